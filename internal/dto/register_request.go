// File: internal/dto/register_request.go
package dto

// swagger:model dto.RegisterRequest
type RegisterRequest struct {
	Name  string `json:"name" validate:"required,max=100" example:"Alice"`
	Email string `json:"email" validate:"required,email,max=100" example:"alice@example.com"`
	// 至少 6 個字元，且 UTF-8 編碼後不超過 72 bytes
	Password string `json:"password" validate:"required,min=6,bcryptlen" example:"Secret123!"`
	IsAdmin  bool   `json:"isAdmin" example:"false"`
}
