// File: internal/dto/http_error.go
package dto

// HTTPError 全域錯誤響應模型
// swagger:model dto.HTTPError
type HTTPError struct {
	// message 錯誤描述，不含內部錯誤細節
	Message string `json:"message" example:"VehicleBrand not found"`
}

// MessageResponse 只有訊息的成功回應
// swagger:model dto.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"success"`
}
