package store

import (
	"vehicle-app/internal/database"
	"vehicle-app/internal/model"
)

var BrandSchema = Schema[model.VehicleBrand]{
	Table:   "vehicle_brands",
	Columns: []Column{{Name: "name"}},
	Values:  func(b *model.VehicleBrand) []any { return []any{b.Name} },
	Dest: func(b *model.VehicleBrand) []any {
		return []any{&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt}
	},
}

var TypeSchema = Schema[model.VehicleType]{
	Table:   "vehicle_types",
	Columns: []Column{{Name: "name"}, {Name: "brand_id", Optional: true}},
	Values:  func(t *model.VehicleType) []any { return []any{t.Name, t.BrandID} },
	Dest: func(t *model.VehicleType) []any {
		return []any{&t.ID, &t.Name, &t.BrandID, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt}
	},
}

var ModelSchema = Schema[model.VehicleModel]{
	Table:   "vehicle_models",
	Columns: []Column{{Name: "name"}, {Name: "type_id"}},
	Values:  func(m *model.VehicleModel) []any { return []any{m.Name, m.TypeID} },
	Dest: func(m *model.VehicleModel) []any {
		return []any{&m.ID, &m.Name, &m.TypeID, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt}
	},
}

var YearSchema = Schema[model.VehicleYear]{
	Table:   "vehicle_years",
	Columns: []Column{{Name: "year"}},
	Values:  func(y *model.VehicleYear) []any { return []any{y.Year} },
	Dest: func(y *model.VehicleYear) []any {
		return []any{&y.ID, &y.Year, &y.CreatedAt, &y.UpdatedAt, &y.DeletedAt}
	},
}

var PriceListSchema = Schema[model.PriceList]{
	Table: "price_lists",
	Columns: []Column{
		{Name: "code"}, {Name: "price"}, {Name: "year_id"}, {Name: "model_id"},
	},
	Values: func(p *model.PriceList) []any { return []any{p.Code, p.Price, p.YearID, p.ModelID} },
	Dest: func(p *model.PriceList) []any {
		return []any{&p.ID, &p.Code, &p.Price, &p.YearID, &p.ModelID, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt}
	},
}

// Catalog 集合五張 catalog 資料表
type Catalog struct {
	Brands     *Table[model.VehicleBrand]
	Types      *Table[model.VehicleType]
	Models     *Table[model.VehicleModel]
	Years      *Table[model.VehicleYear]
	PriceLists *Table[model.PriceList]
}

func NewCatalog(db database.DB) *Catalog {
	return &Catalog{
		Brands:     NewTable(db, BrandSchema),
		Types:      NewTable(db, TypeSchema),
		Models:     NewTable(db, ModelSchema),
		Years:      NewTable(db, YearSchema),
		PriceLists: NewTable(db, PriceListSchema),
	}
}
