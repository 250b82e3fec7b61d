package global

import (
	"hos_alerter/config"
	"hos_alerter/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	HosConfigurations string // Tên collection cho cấu hình HOS theo tenant (database_name)
}

// Các biến toàn cục
var Validate *validator.Validate                                            // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                           // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration                                      // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName)  // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
