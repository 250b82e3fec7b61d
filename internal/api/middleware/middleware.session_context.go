package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"hos_alerter/internal/common"
	"hos_alerter/internal/logger"
	"hos_alerter/internal/utility"
)

// SessionContextMiddleware quản lý session context của panel.
// Panel chạy trong host platform: host cấp session có database name (tenant id),
// và panel bootstrap Firebase anonymous auth để lấy ID token.
//
// Middleware này:
// - Verify Firebase ID token từ header Authorization: Bearer (nếu Firebase đã init)
// - Đọc X-Database-Name (database name từ session của host) và lưu vào Locals
//
// Tenant id luôn đi theo request — không có biến toàn cục "current database".
func SessionContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Verify Firebase ID token nếu Firebase đã được khởi tạo.
		// Khi chạy local không có credentials, bước verify được bỏ qua.
		if utility.FirebaseReady() {
			authHeader := c.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				err := common.NewError(
					common.ErrCodeAuthToken,
					"Thiếu token xác thực",
					common.StatusUnauthorized,
					nil,
				)
				HandleErrorResponse(c, err)
				return nil
			}

			idToken := strings.TrimPrefix(authHeader, "Bearer ")
			// Context của request: verify bị treo sẽ bị hủy cùng request
			token, err := utility.VerifyIDToken(c.Context(), idToken)
			if err != nil {
				logger.WithRequest(c).WithError(err).Warn("Firebase ID token verification failed")
				HandleErrorResponse(c, common.NewError(
					common.ErrCodeAuthToken,
					"Token không hợp lệ",
					common.StatusUnauthorized,
					nil,
				))
				return nil
			}

			c.Locals("firebase_uid", token.UID)
		}

		// Database name từ session của host platform.
		// Giá trị rỗng được chấp nhận ở tầng middleware: từng operation tự quyết
		// (list trả về rỗng, add/remove báo lỗi validation).
		databaseName := strings.TrimSpace(c.Get("X-Database-Name"))
		c.Locals("database_name", databaseName)

		return c.Next()
	}
}

// DatabaseNameFromContext lấy database name đã được SessionContextMiddleware lưu vào Locals.
func DatabaseNameFromContext(c fiber.Ctx) string {
	if dbName := c.Locals("database_name"); dbName != nil {
		if name, ok := dbName.(string); ok {
			return name
		}
	}
	return ""
}
