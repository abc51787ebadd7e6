package internal

// RawLineItem is one line of an order as the order source returns it. SKU is
// nil when the storefront never assigned one.
type RawLineItem struct {
	SKU      *string `json:"sku"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity" validate:"gte=1"`
}

type RawBillTo struct {
	Name string `json:"name"`
}

type RawOrder struct {
	OrderID     int64         `json:"orderId"`
	OrderNumber string        `json:"orderNumber"`
	OrderKey    string        `json:"orderKey"`
	OrderDate   string        `json:"orderDate"`
	OrderStatus string        `json:"orderStatus"`
	BillTo      RawBillTo     `json:"billTo"`
	Items       []RawLineItem `json:"items"`
}

type OrderNumberField string

const (
	FieldOrderNumber OrderNumberField = "orderNumber"
	FieldOrderKey    OrderNumberField = "orderKey"
)

func (o RawOrder) Number(field OrderNumberField) string {
	if field == FieldOrderKey {
		return o.OrderKey
	}
	return o.OrderNumber
}

type ItemRecord struct {
	SKU         string
	Description string
	Quantity    int
}

type OrderRecord struct {
	Store         string
	OrderNumber   string
	ISODatetime   string
	OrderDatetime string
	Customer      string
	Items         []ItemRecord
}

// SKUQuantity is a canonical SKU with its summed quantity.
type SKUQuantity struct {
	SKU      string
	Quantity int
}

type StoreItemRow struct {
	OrderDatetime string
	OrderNumber   string
	Customer      string
	SKU           string
	Description   string
	Quantity      int
}

type Note struct {
	ID        int
	Note      string
	CreatedAt string
}

type SyncRun struct {
	TraceID   string
	Stores    int
	Orders    int
	Items     int
	Rejected  int
	Mismatch  int
	ElapsedMs int64
	CreatedAt string
}
