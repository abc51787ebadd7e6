package pipeline

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"picklist/internal"
	"picklist/internal/config"
	"picklist/internal/picklist"
	"picklist/internal/storage"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	return rows
}

func TestSmokeOrdersToPickListXLSX(t *testing.T) {
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "orders.db"))
	require.NoError(t, err)
	defer db.Close()

	in := NewIngester(nil, zap.NewNop())
	amazon := config.Store{Name: "Amazon", OrderNumberField: internal.FieldOrderNumber}
	result := in.ParseOrders(amazon, []internal.RawOrder{
		{
			OrderNumber: "111-1", OrderDate: "2023-05-25T14:50:07.0000000", BillTo: internal.RawBillTo{Name: "Ann"},
			Items: []internal.RawLineItem{
				{SKU: sp("PREM-646-LRG"), Name: "Premier 646", Quantity: 1},
				{SKU: sp("PREM-646-MED"), Name: "Premier 646", Quantity: 2},
				{SKU: sp("VASS-LEOP-VS135-SML"), Name: "Vass", Quantity: 1},
			},
		},
		{
			OrderNumber: "111-2", OrderDate: "2023-05-26T09:00:00.0000000", BillTo: internal.RawBillTo{Name: "Bob"},
			Items: []internal.RawLineItem{
				{SKU: sp("PREM-646-MED-D"), Name: "Premier 646", Quantity: 1},
				{SKU: nil, Name: "Gift Card", Quantity: 1},
			},
		},
	})
	require.Len(t, result.Orders, 2)
	require.NoError(t, db.ReplaceOrders(result.Orders))

	aggregates, err := db.AggregateQuantities()
	require.NoError(t, err)
	lines := picklist.Build(aggregates)
	assert.Equal(t, []string{
		"Gift Card\n",
		"PREM-646 -> MED (3), LRG\n",
		"VASS-VS.135-LEOP -> SML\n",
	}, lines)

	lastSync := time.Date(2023, 5, 26, 10, 30, 0, 0, time.UTC)
	out := filepath.Join(tmp, "out", "picklist.xlsx")
	require.NoError(t, ExportPickListXLSX(lines, &lastSync, out))

	rows := readRows(t, out)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"last_sync", lastSync.Local().Format(DisplayLayout)}, rows[0])
	assert.Equal(t, []string{"style", "sizes"}, rows[1])
	assert.Equal(t, []string{"Gift Card"}, rows[2])
	assert.Equal(t, []string{"PREM-646", "MED (3), LRG"}, rows[3])
	assert.Equal(t, []string{"VASS-VS.135-LEOP", "SML"}, rows[4])

	storeRows, err := db.ListStoreItems("Amazon")
	require.NoError(t, err)
	storeOut := filepath.Join(tmp, "out", "amazon.xlsx")
	require.NoError(t, ExportStoreItemsXLSX(storeRows, storeOut))

	rows = readRows(t, storeOut)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"order_datetime", "order_number", "customer", "sku", "description", "quantity"}, rows[0])
	assert.Equal(t, "111-2", rows[1][1])
	assert.Equal(t, "05-26-2023 09:00 AM", rows[1][0])
}

func TestRenderPickList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPickList(&buf, nil, nil))
	assert.Equal(t, "Last sync: never\n\nNo open orders.\n", buf.String())

	buf.Reset()
	at := time.Date(2023, 1, 23, 23, 59, 0, 0, time.Local)
	require.NoError(t, RenderPickList(&buf, []string{"PREM-646 -> MED\n", "Gift Card\n"}, &at))
	assert.Equal(t, "Last sync: 01-23-2023 11:59 PM\n\nPREM-646 -> MED\nGift Card\n", buf.String())
}

func TestRenderStoreItems(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderStoreItems(&buf, "eBay", []internal.StoreItemRow{
		{OrderDatetime: "05-23-2023 12:00 PM", OrderNumber: "EB-1", Customer: "Dee", SKU: "PREM-646-MED", Description: "Premier ", Quantity: 2},
	}))
	assert.Equal(t, "eBay: 1 line items\n05-23-2023 12:00 PM\tEB-1\tDee\tPREM-646-MED\t2\tPremier\n", buf.String())
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "New_Shirt_of_the_Day", SafeFileName(" New Shirt of the Day "))
	assert.Equal(t, "a_b_c", SafeFileName("a/b:c"))
}
