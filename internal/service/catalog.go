package service

import (
	"context"
	"time"

	"github.com/samber/oops"

	"vehicle-app/internal/cache"
	"vehicle-app/internal/model"
	"vehicle-app/internal/store"
)

// ExistenceChecker 回報 id 是否存在，*store.Table 實作此介面
type ExistenceChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

// requireRef 檢查外鍵 id 存在，否則回傳 VALIDATION
func requireRef(ctx context.Context, table ExistenceChecker, id int, field string) error {
	if id <= 0 {
		return oops.Code(CodeValidation).Public("Invalid " + field + " provided.").Errorf("%s must be positive", field)
	}
	ok, err := table.Exists(ctx, id)
	if err != nil {
		return oops.Code(CodePersistence).Public("Failed to validate " + field).Wrap(err)
	}
	if !ok {
		return oops.Code(CodeValidation).
			Public("Invalid "+field+" provided.").
			With(field, id).
			Errorf("%s %d does not exist", field, id)
	}
	return nil
}

// Catalog 集合五個 catalog 資源
type Catalog struct {
	Brands     *Resource[model.VehicleBrand]
	Types      *Resource[model.VehicleType]
	Models     *Resource[model.VehicleModel]
	Years      *Resource[model.VehicleYear]
	PriceLists *Resource[model.PriceList]
}

// NewCatalog c 為 nil 時不使用列表快取
func NewCatalog(tables *store.Catalog, c cache.Cache, cacheTTL time.Duration) *Catalog {
	return &Catalog{
		Brands: NewResource("VehicleBrand", tables.Brands,
			func(b *model.VehicleBrand) int { return b.ID },
			WithListCache[model.VehicleBrand](c, cacheTTL),
			WithDependents[model.VehicleBrand]("VehicleType"),
		),
		Types: NewResource("VehicleType", tables.Types,
			func(t *model.VehicleType) int { return t.ID },
			WithListCache[model.VehicleType](c, cacheTTL),
			WithDependents[model.VehicleType]("VehicleModel", "PriceList"),
			WithReferences(func(ctx context.Context, t *model.VehicleType) error {
				// BrandID 為選填
				if t.BrandID == 0 {
					return nil
				}
				return requireRef(ctx, tables.Brands, t.BrandID, "BrandId")
			}),
		),
		Models: NewResource("VehicleModel", tables.Models,
			func(m *model.VehicleModel) int { return m.ID },
			WithListCache[model.VehicleModel](c, cacheTTL),
			WithDependents[model.VehicleModel]("PriceList"),
			WithReferences(func(ctx context.Context, m *model.VehicleModel) error {
				return requireRef(ctx, tables.Types, m.TypeID, "TypeId")
			}),
		),
		Years: NewResource("VehicleYear", tables.Years,
			func(y *model.VehicleYear) int { return y.ID },
			WithListCache[model.VehicleYear](c, cacheTTL),
			WithDependents[model.VehicleYear]("PriceList"),
		),
		PriceLists: NewResource("PriceList", tables.PriceLists,
			func(p *model.PriceList) int { return p.ID },
			WithListCache[model.PriceList](c, cacheTTL),
			WithReferences(func(ctx context.Context, p *model.PriceList) error {
				if err := requireRef(ctx, tables.Years, p.YearID, "YearId"); err != nil {
					return err
				}
				return requireRef(ctx, tables.Models, p.ModelID, "ModelId")
			}),
		),
	}
}
