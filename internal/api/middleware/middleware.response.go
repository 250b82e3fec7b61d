package middleware

import (
	"github.com/gofiber/fiber/v3"

	basehdl "hos_alerter/internal/api/base/handler"
)

// HandleErrorResponse xử lý và trả về error response cho client từ tầng middleware.
// Dùng chung envelope với tầng handler (severity, autoDismissMs) để panel
// render banner cho cả lỗi auth/transport.
func HandleErrorResponse(c fiber.Ctx, err error) {
	basehdl.HandleResponse(c, nil, err)
}
