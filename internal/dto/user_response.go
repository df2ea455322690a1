// File: internal/dto/user_response.go
package dto

import (
	"time"

	"vehicle-app/internal/model"
)

// swagger:model dto.UserResponse
type UserResponse struct {
	ID        int       `json:"id" example:"1"`
	Name      string    `json:"name" example:"Alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	IsAdmin   bool      `json:"isAdmin" example:"false"`
	CreatedAt time.Time `json:"createdAt" example:"2025-05-01T15:04:05Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2025-05-01T15:04:05Z"`
}

// NewUserResponse 轉換為不含密碼哈希的回應
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
