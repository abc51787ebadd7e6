package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"picklist/internal"
)

// RenderPickList prints the pick list the way the warehouse reads it on
// screen: last sync first, then one line per style.
func RenderPickList(w io.Writer, lines []string, lastSync *time.Time) error {
	if _, err := fmt.Fprintf(w, "Last sync: %s\n\n", FormatLastSync(lastSync)); err != nil {
		return err
	}
	if len(lines) == 0 {
		_, err := fmt.Fprintln(w, "No open orders.")
		return err
	}
	for _, line := range lines {
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderStoreItems prints a store's open line items, newest order first.
func RenderStoreItems(w io.Writer, store string, rows []internal.StoreItemRow) error {
	if _, err := fmt.Fprintf(w, "%s: %d line items\n", store, len(rows)); err != nil {
		return err
	}
	for _, row := range rows {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			row.OrderDatetime, row.OrderNumber, row.Customer, row.SKU, row.Quantity, strings.TrimSpace(row.Description))
		if err != nil {
			return err
		}
	}
	return nil
}
