package pipeline

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"picklist/internal"
	"picklist/internal/config"
	"picklist/internal/sku"
)

// DisplayLayout is how order times are shown to warehouse staff,
// e.g. "01-23-2022 11:59 PM".
const DisplayLayout = "01-02-2006 03:04 PM"

const isoLayout = "2006-01-02T15:04:05"

var validate = validator.New()

type IngestResult struct {
	Orders   []internal.OrderRecord
	Items    int
	Rejected int
}

// Ingester turns raw orders into records ready to persist, normalizing each
// line item's SKU on the way.
type Ingester struct {
	normalizer *sku.Normalizer
	logger     *zap.Logger
	mismatched atomic.Int64
}

func NewIngester(revisions map[string]string, logger *zap.Logger) *Ingester {
	in := &Ingester{logger: logger}
	in.normalizer = sku.New(sku.WithRevisions(revisions), sku.WithMismatchHook(in.reportMismatch))
	return in
}

func (in *Ingester) reportMismatch(m sku.Mismatch) {
	in.mismatched.Add(1)
	in.logger.Warn("sku layout not recognized for brand, passing through",
		zap.String("sku", m.SKU),
		zap.String("brand", m.Brand),
		zap.Int("tokens", m.Tokens),
	)
}

// Mismatched counts identifiers of known brands that fit none of their
// layouts since the ingester was created.
func (in *Ingester) Mismatched() int {
	return int(in.mismatched.Load())
}

// ParseOrders converts one store's raw orders. Orders without a number or
// with an unreadable date, and line items with a non-positive quantity, are
// logged and left out.
func (in *Ingester) ParseOrders(store config.Store, raws []internal.RawOrder) IngestResult {
	result := IngestResult{Orders: make([]internal.OrderRecord, 0, len(raws))}

	for _, raw := range raws {
		number := strings.TrimSpace(raw.Number(store.OrderNumberField))
		if number == "" {
			in.logger.Warn("order without number", zap.String("store", store.Name), zap.String("field", string(store.OrderNumberField)))
			result.Rejected++
			continue
		}

		placed, err := ParseOrderDate(raw.OrderDate)
		if err != nil {
			in.logger.Warn("order date unreadable", zap.String("store", store.Name), zap.String("order", number), zap.Error(err))
			result.Rejected++
			continue
		}

		record := internal.OrderRecord{
			Store:         store.Name,
			OrderNumber:   number,
			ISODatetime:   raw.OrderDate,
			OrderDatetime: placed.Format(DisplayLayout),
			Customer:      raw.BillTo.Name,
			Items:         make([]internal.ItemRecord, 0, len(raw.Items)),
		}

		for _, item := range raw.Items {
			if err := validate.Struct(item); err != nil {
				in.logger.Warn("line item rejected",
					zap.String("store", store.Name),
					zap.String("order", number),
					zap.String("description", item.Name),
					zap.Int("quantity", item.Quantity),
				)
				result.Rejected++
				continue
			}
			record.Items = append(record.Items, internal.ItemRecord{
				SKU:         in.normalizer.Normalize(item.SKU, item.Name),
				Description: item.Name,
				Quantity:    item.Quantity,
			})
		}

		result.Items += len(record.Items)
		result.Orders = append(result.Orders, record)
	}

	return result
}

// ParseOrderDate reads the platform's timestamps, e.g.
// 2023-05-25T14:50:07.0000000. Fractional seconds are dropped.
func ParseOrderDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	base, _, _ := strings.Cut(value, ".")
	t, err := time.Parse(isoLayout, base)
	if err != nil {
		return time.Time{}, fmt.Errorf("order date %q: %w", value, err)
	}
	return t, nil
}
