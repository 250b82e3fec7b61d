// Package basehdl chứa các helper chuẩn hóa response cho tầng handler.
package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"

	"hos_alerter/internal/common"
)

// AlertAutoDismissMs là thời gian auto-dismiss của status banner phía panel (5 giây).
const AlertAutoDismissMs = 5000

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
// Helper function này đảm bảo tất cả JSON responses đều có charset=utf-8 để hỗ trợ UTF-8 encoding đúng cách
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	// Set Content-Type với charset=utf-8 trước khi gọi JSON
	c.Set("Content-Type", "application/json; charset=utf-8")
	// Trả về JSON response
	return c.Status(statusCode).JSON(data)
}

// severityForError map lỗi sang severity hiển thị của banner (warning/danger).
// DuplicateRecipient và lỗi validation là warning (non-fatal); còn lại là danger.
func severityForError(err *common.Error) string {
	switch err.Code.Code {
	case common.ErrCodeBusinessOperation.Code,
		common.ErrCodeValidationInput.Code,
		common.ErrCodeValidationFormat.Code:
		return "warning"
	default:
		return "danger"
	}
}

// SafeHandler bọc các handler với recover để bắt panic và xử lý lỗi an toàn.
// Hàm này đảm bảo rằng server luôn trả về response cho client, kể cả khi có panic xảy ra.
func SafeHandler(c fiber.Ctx, handler func() error) error {
	defer func() {
		if r := recover(); r != nil {
			// Log stack trace để debug
			debug.PrintStack()

			// Trả về lỗi cho client
			HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return handler()
}

// HandleResponse xử lý và chuẩn hóa response trả về cho client.
// Phương thức này đảm bảo format response thống nhất trong toàn bộ ứng dụng.
// Mỗi response mang severity và autoDismissMs để panel render status banner.
func HandleResponse(c fiber.Ctx, data interface{}, err error) {
	HandleResponseWithMessage(c, data, common.MsgSuccess, err)
}

// HandleResponseWithMessage giống HandleResponse nhưng cho phép custom success message
// (ví dụ "Đã thêm recipient vào danh sách HOS alert").
func HandleResponseWithMessage(c fiber.Ctx, data interface{}, message string, err error) {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			JSONResponse(c, customErr.StatusCode, fiber.Map{
				"code":          customErr.Code.Code,
				"message":       customErr.Message,
				"details":       customErr.Details,
				"status":        "error",
				"severity":      severityForError(customErr),
				"autoDismissMs": AlertAutoDismissMs,
			})
			return
		}
		// Nếu không phải custom error, trả về internal server error
		JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":          common.ErrCodeDatabase.Code,
			"message":       err.Error(),
			"status":        "error",
			"severity":      "danger",
			"autoDismissMs": AlertAutoDismissMs,
		})
		return
	}

	// Trường hợp thành công
	JSONResponse(c, common.StatusOK, fiber.Map{
		"code":          common.StatusOK,
		"message":       message,
		"data":          data,
		"status":        "success",
		"severity":      "success",
		"autoDismissMs": AlertAutoDismissMs,
	})
}
