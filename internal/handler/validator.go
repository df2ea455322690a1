package handler

import "github.com/go-playground/validator/v10"

// MaxPasswordBytes bcrypt 只處理前 72 bytes
const MaxPasswordBytes = 72

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// bcryptlen 以 UTF-8 位元組數計算，max 計算的是字元數
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	return &CustomValidator{validator: v}
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
