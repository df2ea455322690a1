package vehicles

import (
	"vehicle-app/internal/model"
)

func BrandEndpoint(svc Service[model.VehicleBrand]) Endpoint[model.VehicleBrand] {
	return Endpoint[model.VehicleBrand]{
		Path:    "/VehicleBrand",
		Plural:  "Brands",
		Service: svc,
		Filters: ContainsFilter("filter", "name"),
		ID:      func(b *model.VehicleBrand) int { return b.ID },
	}
}

func TypeEndpoint(svc Service[model.VehicleType]) Endpoint[model.VehicleType] {
	return Endpoint[model.VehicleType]{
		Path:    "/VehicleType",
		Plural:  "Types",
		Service: svc,
		Filters: IDFilter("brandId", "brand_id"),
		ID:      func(t *model.VehicleType) int { return t.ID },
	}
}

func ModelEndpoint(svc Service[model.VehicleModel]) Endpoint[model.VehicleModel] {
	return Endpoint[model.VehicleModel]{
		Path:    "/VehicleModel",
		Plural:  "Models",
		Service: svc,
		Filters: ContainsFilter("filter", "name"),
		ID:      func(m *model.VehicleModel) int { return m.ID },
	}
}

func YearEndpoint(svc Service[model.VehicleYear]) Endpoint[model.VehicleYear] {
	return Endpoint[model.VehicleYear]{
		Path:    "/VehicleYear",
		Plural:  "Years",
		Service: svc,
		// 年份以文字做包含比對，例如 filter=20 會找到 2019、2020
		Filters: ContainsFilter("filter", "year::text"),
		ID:      func(y *model.VehicleYear) int { return y.ID },
	}
}

func PriceListEndpoint(svc Service[model.PriceList]) Endpoint[model.PriceList] {
	return Endpoint[model.PriceList]{
		Path:    "/PriceList",
		Plural:  "PriceLists",
		Service: svc,
		Filters: AllFilters(IDFilter("yearId", "year_id"), IDFilter("modelId", "model_id")),
		ID:      func(p *model.PriceList) int { return p.ID },
	}
}
