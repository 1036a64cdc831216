package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/posadmin/internal/client/client"
	"github.com/dmitrijs2005/posadmin/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_PostsAndRelists(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.srv.SetNextID(models.KindTax, 11)

	a := h.app(t, `{"tax_name": "VAT", "tax_desc": "13%", "status": "active", "bogus": 1}`, "")
	require.NoError(t, a.Create(context.Background(), "tax"))

	out := h.out.String()
	assert.Contains(t, out, "Created tax 11")
	assert.Contains(t, out, "tax_name")
	assert.Contains(t, out, "VAT")

	records := h.srv.Records(models.KindTax)
	require.Len(t, records, 1)
	assert.NotContains(t, records[0], "bogus")

	reqs := h.srv.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, http.MethodGet, reqs[1].Method)
}

func TestCreate_RejectsNonObject(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	a := h.app(t, `[1, 2]`, "")
	err := a.Create(context.Background(), "tax")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a JSON object")
	assert.Empty(t, h.srv.Requests())
}

func TestUnknownKind(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	err := h.app(t).List(context.Background(), "widgets")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown kind "widgets"`)
	assert.Contains(t, err.Error(), "opening-stock")
}

func TestUpdate_ReplacesAndRelists(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	ids := h.srv.Seed(models.KindSupplier, models.Supplier{SupplierName: "Old", Status: models.StatusActive})

	a := h.app(t, `{"supplier_name": "New", "description": "d"}`, "")
	require.NoError(t, a.Update(context.Background(), "supplier", ids[0].String()))

	assert.Contains(t, h.out.String(), "Updated supplier "+ids[0].String())
	assert.Equal(t, "New", h.srv.Records(models.KindSupplier)[0]["supplier_name"])
}

func TestUpdate_NotFound(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	a := h.app(t, `{"unit_name": "kg"}`, "")
	err := a.Update(context.Background(), "unit", "99")

	require.ErrorIs(t, err, client.ErrRepository)
	assert.Contains(t, client.Message(err), "not found")
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		wantLeft  int
		wantOut   string
		wantCalls int
	}{
		{name: "confirmed", answer: "y", wantLeft: 0, wantOut: "deleted successfully", wantCalls: 2},
		{name: "declined", answer: "n", wantLeft: 1, wantOut: "Cancelled.", wantCalls: 0},
		{name: "default is no", answer: "", wantLeft: 1, wantOut: "Cancelled.", wantCalls: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.login(t)
			ids := h.srv.Seed(models.KindGroup, models.Group{GroupName: "Food"})

			a := h.app(t, tc.answer)
			require.NoError(t, a.Delete(context.Background(), "group", ids[0].String()))

			assert.Contains(t, h.out.String(), tc.wantOut)
			assert.Len(t, h.srv.Records(models.KindGroup), tc.wantLeft)
			assert.Len(t, h.srv.Requests(), tc.wantCalls)
		})
	}
}

func TestList_SalesNewestFirst(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.srv.Seed(models.KindSales,
		models.Sale{SalesDate: "2024-01-05", PaymentMethod: "cash"},
		models.Sale{SalesDate: "2024-03-01", PaymentMethod: "card"},
		models.Sale{SalesDate: "2024-02-10", PaymentMethod: "cash"},
	)

	require.NoError(t, h.app(t).List(context.Background(), "sales"))

	out := h.out.String()
	first := strings.Index(out, "2024-03-01")
	second := strings.Index(out, "2024-02-10")
	third := strings.Index(out, "2024-01-05")
	require.True(t, first >= 0 && second >= 0 && third >= 0, out)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestList_Empty(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	require.NoError(t, h.app(t).List(context.Background(), "membership"))
	assert.Contains(t, h.out.String(), "No membership records.")
}

func TestSortNewestFirst(t *testing.T) {
	items := []json.RawMessage{
		json.RawMessage(`{"id":1,"sales_date":"2024-01-01"}`),
		json.RawMessage(`{"id":2}`),
		json.RawMessage(`{"id":3,"sales_date":"2024-06-01T10:00:00Z"}`),
		json.RawMessage(`{"id":4,"sales_date":"2024-01-01"}`),
	}
	sortNewestFirst(items, "sales_date")

	got := make([]string, len(items))
	for i, it := range items {
		got[i] = string(it)
	}
	want := []string{
		`{"id":3,"sales_date":"2024-06-01T10:00:00Z"}`,
		`{"id":1,"sales_date":"2024-01-01"}`,
		`{"id":4,"sales_date":"2024-01-01"}`,
		`{"id":2}`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestBill_TextAndPDF(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.srv.Seed(models.KindCompany, models.Company{CompanyName: "Corner Shop", CompanyAddress: "1 High St"})
	h.srv.Seed(models.KindProduct, models.Product{ProductID: "5", ProductName: "Tea"})
	ids := h.srv.Seed(models.KindSales, models.Sale{
		SalesDate:     "2024-04-01",
		PaymentMethod: "cash",
		Products: []models.SaleLine{
			{ProductID: "5", Qty: models.NewDecimal(decimal.NewFromInt(3)), Price: models.RequireDecimal("2.5")},
		},
		Total: models.RequireDecimal("7.5"),
	})

	path := filepath.Join(t.TempDir(), "bills", "bill.pdf")
	require.NoError(t, h.app(t).Bill(context.Background(), ids[0].String(), path))

	out := h.out.String()
	assert.Contains(t, out, "Corner Shop")
	assert.Contains(t, out, "Bill #"+ids[0].String())
	assert.Contains(t, out, "Tea")
	assert.Contains(t, out, "7.50")
	assert.Contains(t, out, "Unknown Tax")
	assert.Contains(t, out, "Bill saved to")

	doc, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(doc), "%PDF"))
}

func TestBill_SaleNotFound(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	err := h.app(t).Bill(context.Background(), "404", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sale not found")
}

func TestWriteTable(t *testing.T) {
	items := []json.RawMessage{
		json.RawMessage(`{"sale_id":1,"products":[{"product_id":1},{"product_id":2}],"meta":{"a":1},"sales_date":"2024-01-01"}`),
		json.RawMessage(`{"sale_id":2,"products":[]}`),
	}

	var out strings.Builder
	require.NoError(t, writeTable(&out, items))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"sale_id", "products", "meta", "sales_date"}, strings.Fields(lines[0]))
	assert.Contains(t, lines[1], "[2 items]")
	assert.Contains(t, lines[1], `{"a":1}`)
	assert.Contains(t, lines[2], "[0 items]")
}
