// File: internal/model/vehicle.go
package model

import "time"

// VehicleBrand 車輛品牌
// swagger:model VehicleBrand
type VehicleBrand struct {
	ID        int        `db:"id" json:"id" example:"1"`
	Name      string     `db:"name" json:"name" validate:"required,max=100" example:"Toyota"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"deletedAt"`
}

// VehicleType 車輛類型，BrandID 為 0 表示未指定品牌
// swagger:model VehicleType
type VehicleType struct {
	ID        int        `db:"id" json:"id" example:"1"`
	Name      string     `db:"name" json:"name" validate:"required,max=100" example:"SUV"`
	BrandID   int        `db:"brand_id" json:"brandId" validate:"min=0" example:"1"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"deletedAt"`
}

// VehicleModel 車款，必須隸屬於某個 VehicleType
// swagger:model VehicleModel
type VehicleModel struct {
	ID        int        `db:"id" json:"id" example:"1"`
	Name      string     `db:"name" json:"name" validate:"required,max=100" example:"RAV4"`
	TypeID    int        `db:"type_id" json:"typeId" validate:"required,min=1" example:"1"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"deletedAt"`
}

// VehicleYear 年式
// swagger:model VehicleYear
type VehicleYear struct {
	ID        int        `db:"id" json:"id" example:"1"`
	Year      int        `db:"year" json:"year" validate:"required" example:"2024"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"deletedAt"`
}

// PriceList 某車款於某年式的價格
// swagger:model PriceList
type PriceList struct {
	ID        int        `db:"id" json:"id" example:"1"`
	Code      string     `db:"code" json:"code" validate:"required,max=100" example:"RAV4-2024-BASE"`
	Price     float64    `db:"price" json:"price" validate:"min=0,max=999999999999.99" example:"32000"`
	YearID    int        `db:"year_id" json:"yearId" validate:"required,min=1" example:"1"`
	ModelID   int        `db:"model_id" json:"modelId" validate:"required,min=1" example:"1"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"deletedAt"`
}
