package main

import (
	"context"

	"hos_alerter/internal/api/events"
	"hos_alerter/internal/logger"
)

// InitEvents đăng ký các consumer cho data-change event.
// Mọi thay đổi trên hos_configurations được ghi vào audit log,
// kể cả thay đổi đến từ path không đi qua handler (ví dụ ensure lúc panel load).
func InitEvents() {
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		logger.GetAuditLogger().WithFields(map[string]interface{}{
			"collection": e.CollectionName,
			"operation":  e.Operation,
		}).Info("Data changed")
	})
}
