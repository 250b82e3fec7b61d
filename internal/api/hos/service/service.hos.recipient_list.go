package hossvc

import (
	"time"

	"hos_alerter/internal/api/hos/models"
)

// hasRecipient kiểm tra email đã có trong danh sách chưa (exact match, case-sensitive)
func hasRecipient(list []models.Recipient, email string) bool {
	for _, r := range list {
		if r.Email == email {
			return true
		}
	}
	return false
}

// withRecipient trả về danh sách mới với recipient được append vào cuối,
// giữ nguyên thứ tự các phần tử cũ. Không sửa slice đầu vào.
func withRecipient(list []models.Recipient, r models.Recipient) []models.Recipient {
	updated := make([]models.Recipient, 0, len(list)+1)
	updated = append(updated, list...)
	updated = append(updated, r)
	return updated
}

// withoutRecipient trả về danh sách mới đã loại mọi entry có email khớp exact,
// giữ nguyên thứ tự các phần tử còn lại. Không sửa slice đầu vào.
func withoutRecipient(list []models.Recipient, email string) []models.Recipient {
	updated := make([]models.Recipient, 0, len(list))
	for _, r := range list {
		if r.Email != email {
			updated = append(updated, r)
		}
	}
	return updated
}

// nowISO8601 trả về thời điểm hiện tại dạng ISO-8601 UTC với milliseconds,
// ví dụ 2026-08-29T07:15:04.000Z (cùng format với added_at của dữ liệu cũ).
func nowISO8601() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}
