// Package hossvc chứa business logic của domain HOS:
// quản lý danh sách email nhận cảnh báo Hours of Service theo từng tenant.
package hossvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	basesvc "hos_alerter/internal/api/base/service"
	"hos_alerter/internal/api/hos/models"
	"hos_alerter/internal/common"
	"hos_alerter/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	// ReservedDatabaseName là tenant demo: không bao giờ tạo document,
	// mọi thao tác persistence với tenant này là no-op.
	ReservedDatabaseName = "demo"

	// Số lần retry tối đa khi conditional update bị conflict (revision mismatch)
	maxWriteRetries = 3

	// Backoff cơ sở giữa các lần retry, nhân đôi sau mỗi lần
	retryBackoffBase = 50 * time.Millisecond

	// Timeout mặc định cho mỗi thao tác store khi config không chỉ định
	defaultStoreTimeout = 10 * time.Second
)

// RecipientStore là cấu trúc chứa các phương thức quản lý recipient cảnh báo HOS.
// Mỗi tenant có đúng một TenantConfiguration document, định danh bằng database_name.
type RecipientStore struct {
	base    basesvc.BaseServiceMongo[models.TenantConfiguration]
	timeout time.Duration // giới hạn thời gian cho mỗi thao tác store
}

// NewRecipientStore tạo mới RecipientStore từ collection đã đăng ký trong registry
func NewRecipientStore() (*RecipientStore, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.HosConfigurations)
	if !exist {
		return nil, fmt.Errorf("failed to get hos_configurations collection: %v", common.ErrNotFound)
	}

	return &RecipientStore{
		base:    basesvc.NewBaseServiceMongo[models.TenantConfiguration](collection),
		timeout: configuredStoreTimeout(),
	}, nil
}

// configuredStoreTimeout đọc STORE_TIMEOUT_SECONDS từ config đã load
func configuredStoreTimeout() time.Duration {
	if global.ServerConfig != nil && global.ServerConfig.StoreTimeoutSeconds > 0 {
		return time.Duration(global.ServerConfig.StoreTimeoutSeconds) * time.Second
	}
	return defaultStoreTimeout
}

// newRecipientStoreWithBackend tạo RecipientStore với backend tùy ý (dùng cho unit test)
func newRecipientStoreWithBackend(base basesvc.BaseServiceMongo[models.TenantConfiguration]) *RecipientStore {
	return &RecipientStore{base: base, timeout: defaultStoreTimeout}
}

// boundedContext giới hạn thời gian cho một thao tác store: request bị treo
// vì Mongo không phản hồi phải được cắt thay vì giữ connection vô hạn.
func (s *RecipientStore) boundedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// EnsureTenantConfiguration đảm bảo tenant có configuration document.
// Trả về true nếu document vừa được khởi tạo, false nếu đã tồn tại từ trước.
// Tenant rỗng hoặc tenant demo là no-op (không tạo gì, không lỗi).
func (s *RecipientStore) EnsureTenantConfiguration(ctx context.Context, databaseName string) (bool, error) {
	if databaseName == "" || databaseName == ReservedDatabaseName {
		return false, nil
	}

	ctx, cancel := s.boundedContext(ctx)
	defer cancel()

	_, err := s.base.FindOne(ctx, bson.M{"database_name": databaseName}, nil)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return false, mapStoreError(err)
	}

	_, err = s.base.InsertOne(ctx, models.TenantConfiguration{
		DatabaseName: databaseName,
		Recipients:   []models.Recipient{},
		Active:       true,
		Revision:     0,
	})
	if err != nil {
		// Hai request ensure chạy song song: unique index trên database_name
		// chặn bản insert thứ hai, coi như document đã tồn tại.
		if errors.Is(err, common.ErrMongoDuplicate) || errors.Is(err, common.ErrDuplicate) {
			return false, nil
		}
		return false, mapStoreError(err)
	}

	return true, nil
}

// ListRecipients trả về danh sách recipient hiện tại của tenant, giữ nguyên thứ tự.
// Chưa có document không phải là lỗi: trả về danh sách rỗng.
func (s *RecipientStore) ListRecipients(ctx context.Context, databaseName string) ([]models.Recipient, error) {
	if databaseName == "" || databaseName == ReservedDatabaseName {
		return []models.Recipient{}, nil
	}

	ctx, cancel := s.boundedContext(ctx)
	defer cancel()

	config, err := s.base.FindOne(ctx, bson.M{"database_name": databaseName}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return []models.Recipient{}, nil
		}
		return nil, mapStoreError(err)
	}

	if config.Recipients == nil {
		return []models.Recipient{}, nil
	}
	return config.Recipients, nil
}

// AddRecipient thêm một email vào danh sách recipient của tenant.
// Email đã có trong danh sách (so sánh exact, case-sensitive) trả về
// ErrDuplicateRecipient và không ghi gì. Tenant chưa ensure trả về
// ErrTenantNotFound. Trả về danh sách sau khi thêm.
func (s *RecipientStore) AddRecipient(ctx context.Context, databaseName string, email string) ([]models.Recipient, error) {
	return s.updateRecipients(ctx, databaseName, func(current []models.Recipient) ([]models.Recipient, error) {
		if hasRecipient(current, email) {
			return nil, common.ErrDuplicateRecipient
		}
		return withRecipient(current, models.Recipient{
			Email:   email,
			AddedAt: nowISO8601(),
		}), nil
	})
}

// RemoveRecipient gỡ một email khỏi danh sách recipient của tenant.
// Idempotent: gỡ email không tồn tại vẫn thành công và không đổi danh sách.
// Tenant chưa ensure trả về ErrTenantNotFound. Trả về danh sách sau khi gỡ.
func (s *RecipientStore) RemoveRecipient(ctx context.Context, databaseName string, email string) ([]models.Recipient, error) {
	return s.updateRecipients(ctx, databaseName, func(current []models.Recipient) ([]models.Recipient, error) {
		return withoutRecipient(current, email), nil
	})
}

// updateRecipients thực hiện chu trình read-modify-write trên danh sách recipient
// với optimistic concurrency: đọc document, tính danh sách mới, ghi có điều kiện
// so khớp revision đã đọc. Revision mismatch (document bị ghi đè giữa chừng)
// được retry với exponential backoff, tối đa maxWriteRetries lần.
func (s *RecipientStore) updateRecipients(ctx context.Context, databaseName string, mutate func([]models.Recipient) ([]models.Recipient, error)) ([]models.Recipient, error) {
	ctx, cancel := s.boundedContext(ctx)
	defer cancel()

	for attempt := 0; ; attempt++ {
		config, err := s.base.FindOne(ctx, bson.M{"database_name": databaseName}, nil)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.ErrTenantNotFound
			}
			return nil, mapStoreError(err)
		}

		updated, err := mutate(config.Recipients)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			updated = []models.Recipient{}
		}

		result, err := s.base.FindOneAndUpdate(ctx,
			bson.M{
				"database_name": databaseName,
				"revision":      config.Revision,
			},
			&basesvc.UpdateData{
				Set: map[string]interface{}{"recipients": updated},
				Inc: map[string]interface{}{"revision": 1},
			},
			nil,
		)
		if err == nil {
			return result.Recipients, nil
		}

		// Document vừa đọc được nhưng filter revision không khớp:
		// một writer khác đã ghi đè trước. Đọc lại và thử lại.
		if errors.Is(err, common.ErrNotFound) {
			if attempt >= maxWriteRetries {
				return nil, common.ErrWriteConflict
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBackoffBase << attempt):
			}
			continue
		}

		return nil, mapStoreError(err)
	}
}

// mapStoreError đưa các lỗi hạ tầng MongoDB về lỗi store-unavailable của domain:
// lỗi kết nối, lỗi truy vấn, lỗi ghi đều nghĩa là document store không dùng được
// và user có thể retry bằng thao tác mới. Lỗi nghiệp vụ và validation giữ nguyên.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrMongoConnection) ||
		errors.Is(err, common.ErrMongoNetwork) ||
		errors.Is(err, common.ErrMongoTimeout) ||
		errors.Is(err, common.ErrMongoQuery) ||
		errors.Is(err, common.ErrMongoWrite) ||
		mongo.IsNetworkError(err) {
		return common.ErrStoreUnavailable
	}
	// Lỗi MongoDB không phân loại được (mã DB chung) cũng là store unavailable
	var commonErr *common.Error
	if errors.As(err, &commonErr) && commonErr.Code.Code == common.ErrCodeDatabase.Code {
		return common.ErrStoreUnavailable
	}
	return err
}
