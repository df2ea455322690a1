// File: internal/dto/login_request.go
package dto

// swagger:model dto.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=100" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"Secret123!"`
}
