package repositories

import "github.com/dmitrijs2005/posadmin/internal/client/models"

// Set holds one repository per resource.
type Set struct {
	Categories       *Repository[models.Category]
	Groups           *Repository[models.Group]
	Companies        *Repository[models.Company]
	Products         *Repository[models.Product]
	Units            *Repository[models.Unit]
	Taxes            *Repository[models.Tax]
	Suppliers        *Repository[models.Supplier]
	Memberships      *Repository[models.Membership]
	OpeningStock     *Repository[models.OpeningStock]
	StockAdjustments *Repository[models.StockAdjustment]
	Sales            *Repository[models.Sale]

	byName map[string]Collection
}

func NewSet(gw Doer) *Set {
	s := &Set{
		Categories:       New[models.Category](gw, models.KindCategory),
		Groups:           New[models.Group](gw, models.KindGroup),
		Companies:        New[models.Company](gw, models.KindCompany),
		Products:         New[models.Product](gw, models.KindProduct),
		Units:            New[models.Unit](gw, models.KindUnit),
		Taxes:            New[models.Tax](gw, models.KindTax),
		Suppliers:        New[models.Supplier](gw, models.KindSupplier),
		Memberships:      New[models.Membership](gw, models.KindMembership),
		OpeningStock:     New[models.OpeningStock](gw, models.KindOpeningStock),
		StockAdjustments: New[models.StockAdjustment](gw, models.KindStockAdjustment),
		Sales:            New[models.Sale](gw, models.KindSales),
	}

	s.byName = make(map[string]Collection, len(models.Kinds))
	for _, c := range s.All() {
		s.byName[c.Kind().Name] = c
	}
	return s
}

// All returns the repositories in menu order.
func (s *Set) All() []Collection {
	return []Collection{
		s.Categories, s.Groups, s.Companies, s.Products, s.Units, s.Taxes,
		s.Suppliers, s.Memberships, s.OpeningStock, s.StockAdjustments, s.Sales,
	}
}

// ByName finds a repository by resource name, e.g. "opening-stock".
func (s *Set) ByName(name string) (Collection, bool) {
	c, ok := s.byName[name]
	return c, ok
}
