// Package models - TenantConfiguration thuộc domain HOS (Hours of Service).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recipient - một địa chỉ email nhận cảnh báo HOS của tenant.
type Recipient struct {
	Email   string `json:"email" bson:"email"`
	AddedAt string `json:"added_at" bson:"added_at"` // ISO-8601 UTC, ví dụ 2026-08-29T07:15:04.000Z
}

// TenantConfiguration - document cấu hình cảnh báo HOS của một tenant,
// định danh bằng database_name (mỗi tenant đúng một document).
type TenantConfiguration struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	DatabaseName string             `json:"database_name" bson:"database_name" index:"single:1"`
	Recipients   []Recipient        `json:"recipients" bson:"recipients"`
	Active       bool               `json:"active" bson:"active" index:"single:1"`

	// Revision tăng 1 mỗi lần ghi, dùng làm điều kiện so khớp
	// khi cập nhật để phát hiện ghi đè đồng thời.
	Revision int64 `json:"revision" bson:"revision"`

	CreatedAt int64 `json:"created_at" bson:"created_at"`
	UpdatedAt int64 `json:"updated_at" bson:"updated_at"`
}
