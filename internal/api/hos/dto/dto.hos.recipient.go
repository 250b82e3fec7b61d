// Package hosdto chứa các DTO tầng transport của domain HOS.
package hosdto

import (
	"hos_alerter/internal/api/hos/models"
)

// AddRecipientInput dùng cho thêm recipient vào danh sách nhận cảnh báo (tầng transport)
type AddRecipientInput struct {
	Email string `json:"email" validate:"required,email,no_xss"`
}

// RemoveRecipientInput dùng cho gỡ recipient khỏi danh sách nhận cảnh báo (tầng transport)
type RemoveRecipientInput struct {
	Email string `json:"email" validate:"required,email,no_xss"`
}

// RecipientListResponse trả về danh sách recipient hiện tại của tenant
type RecipientListResponse struct {
	DatabaseName string             `json:"database_name"`
	Recipients   []models.Recipient `json:"recipients"`
	Count        int                `json:"count"`
}

// EnsureConfigurationResponse trả về kết quả đảm bảo document cấu hình tồn tại
type EnsureConfigurationResponse struct {
	DatabaseName string `json:"database_name"`
	Created      bool   `json:"created"` // true nếu document vừa được khởi tạo
}
