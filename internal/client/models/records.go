package models

import "github.com/shopspring/decimal"

func init() {
	// The API expects money as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type Category struct {
	CategoryID   ID     `json:"category_id,omitempty"`
	CategoryName string `json:"category_name"`
	CategoryDesc string `json:"category_desc"`
	GroupID      ID     `json:"group_id,omitempty"`
	Status       Status `json:"status,omitempty"`
}

type Group struct {
	GroupID   ID     `json:"group_id,omitempty"`
	GroupName string `json:"group_name"`
	GroupDesc string `json:"group_desc"`
}

type Company struct {
	CompanyID      ID     `json:"company_id,omitempty"`
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	CompanyEmail   string `json:"company_email"`
	CompanyContact string `json:"company_contact"`
	CompanyPAN     string `json:"company_PAN"`
	CompanyType    string `json:"company_type"`
	RefLink        string `json:"ref_link"`
}

type Product struct {
	ProductID   ID     `json:"product_id,omitempty"`
	ProductName string `json:"product_name"`
	ProductDesc string `json:"product_desc"`
	CategoryID  ID     `json:"category_id,omitempty"`
	UnitID      ID     `json:"unit_id,omitempty"`
}

// Unit reuses the group_desc property for its description; that is the name
// the API stores it under.
type Unit struct {
	UnitID   ID     `json:"unit_id,omitempty"`
	UnitName string `json:"unit_name"`
	UnitDesc string `json:"group_desc"`
	Status   Status `json:"status,omitempty"`
}

type Tax struct {
	TaxID   ID     `json:"tax_id,omitempty"`
	TaxName string `json:"tax_name"`
	TaxDesc string `json:"tax_desc"`
	Status  Status `json:"status,omitempty"`
}

type Supplier struct {
	SupplierID   ID     `json:"supplier_id,omitempty"`
	SupplierName string `json:"supplier_name"`
	Description  string `json:"description"`
	Status       Status `json:"status,omitempty"`
}

type Membership struct {
	MembershipID   ID      `json:"membership_id,omitempty"`
	MembershipName string  `json:"membership_name"`
	Percentage     Decimal `json:"percentage"`
	Status         Status  `json:"status,omitempty"`
}

type OpeningStock struct {
	OpeningStockID ID      `json:"opening_stock_id,omitempty"`
	ProductID      ID      `json:"product_id"`
	Qty            Decimal `json:"qty"`
	Price          Decimal `json:"price"`
	OpeningDate    string  `json:"opening_date"`
}

type StockAdjustment struct {
	StockAdjID      ID      `json:"stock_adj_id,omitempty"`
	AdjustmentTitle string  `json:"adjustment_title"`
	AdjustmentQty   Decimal `json:"adjustment_qty"`
	AdjustmentType  string  `json:"adjustment_type"`
	Reason          string  `json:"reason"`
	ProductID       ID      `json:"product_id"`
}

// SaleLine is one product row of a sale.
type SaleLine struct {
	ProductID ID      `json:"product_id"`
	Qty       Decimal `json:"qty"`
	Price     Decimal `json:"price"`
	Total     Decimal `json:"total"`
}

// Sale is a recorded sale. Tax holds the id of the applied tax.
type Sale struct {
	SaleID             ID         `json:"sale_id,omitempty"`
	Products           []SaleLine `json:"products"`
	SalesDate          string     `json:"sales_date"`
	PaymentMethod      string     `json:"payment_method"`
	DiscountAmt        Decimal    `json:"discount_amt"`
	DiscountPercentage Decimal    `json:"discount_percentage"`
	Tax                ID         `json:"tax"`
	Total              Decimal    `json:"total"`
}
