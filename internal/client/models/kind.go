package models

// Kind describes how one resource is exposed by the API.
type Kind struct {
	// Name is the CLI-facing identifier.
	Name string
	// Path is appended to the API base URL.
	Path string
	// Envelope is the key the list endpoint wraps its array in.
	Envelope string
	// IDField is the record's identifier property.
	IDField string
}

var (
	KindCategory        = Kind{Name: "category", Path: "category", Envelope: "categories", IDField: "category_id"}
	KindGroup           = Kind{Name: "group", Path: "group", Envelope: "groups", IDField: "group_id"}
	KindCompany         = Kind{Name: "company", Path: "company", Envelope: "companies", IDField: "company_id"}
	KindProduct         = Kind{Name: "product", Path: "product", Envelope: "products", IDField: "product_id"}
	KindUnit            = Kind{Name: "unit", Path: "unit", Envelope: "units", IDField: "unit_id"}
	KindTax             = Kind{Name: "tax", Path: "tax", Envelope: "taxes", IDField: "tax_id"}
	KindSupplier        = Kind{Name: "supplier", Path: "supplier", Envelope: "suppliers", IDField: "supplier_id"}
	KindMembership      = Kind{Name: "membership", Path: "membershipType", Envelope: "membershipTypes", IDField: "membership_id"}
	KindOpeningStock    = Kind{Name: "opening-stock", Path: "opening-stock", Envelope: "openingStockEntries", IDField: "opening_stock_id"}
	KindStockAdjustment = Kind{Name: "stock-adjustment", Path: "stock", Envelope: "stock_adjustments", IDField: "stock_adj_id"}
	KindSales           = Kind{Name: "sales", Path: "sales", Envelope: "sales", IDField: "sale_id"}
)

// Kinds lists every resource in menu order.
var Kinds = []Kind{
	KindCategory,
	KindGroup,
	KindCompany,
	KindProduct,
	KindUnit,
	KindTax,
	KindSupplier,
	KindMembership,
	KindOpeningStock,
	KindStockAdjustment,
	KindSales,
}

// KindByName looks a resource up by its CLI name.
func KindByName(name string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}
