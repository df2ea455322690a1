// File: internal/dto/login_response.go
package dto

// swagger:model dto.LoginResponse
type LoginResponse struct {
	JWT     string `json:"jwt" example:"eyJhbGciOi..."`
	Message string `json:"message" example:"success"`
}
