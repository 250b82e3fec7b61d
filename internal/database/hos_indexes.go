// Package database - Index cho collection hos_configurations.
package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hos_alerter/internal/global"
)

// CreateHosIndexes tạo các index cho collection hos_configurations.
// Unique index trên database_name đảm bảo invariant "một configuration document
// cho mỗi tenant" ngay cả khi check-then-create bị race.
func CreateHosIndexes(ctx context.Context, db *mongo.Database) error {
	hosConfigs := db.Collection(global.MongoDB_ColNames.HosConfigurations)

	// hos_configurations: database_name unique — một document cho mỗi tenant
	if _, err := hosConfigs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "database_name", Value: 1},
		},
		Options: options.Index().SetName("hos_config_database_name_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// hos_configurations: (active, updated_at) — danh sách tenant đang bật alert
	if _, err := hosConfigs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "active", Value: 1},
			{Key: "updated_at", Value: -1},
		},
		Options: options.Index().SetName("hos_config_active_updated"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

// isIndexExistsError kiểm tra lỗi index đã tồn tại (IndexOptionsConflict / IndexKeySpecsConflict).
// Việc tạo lại index với cùng spec không phải là lỗi khi khởi động lại server.
func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "IndexOptionsConflict") ||
		strings.Contains(msg, "IndexKeySpecsConflict") ||
		strings.Contains(msg, "already exists")
}
