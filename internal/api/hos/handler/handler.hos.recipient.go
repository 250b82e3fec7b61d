// Package hoshdl xử lý các HTTP request của domain HOS (quản lý recipient cảnh báo).
package hoshdl

import (
	"fmt"

	basehdl "hos_alerter/internal/api/base/handler"
	hosdto "hos_alerter/internal/api/hos/dto"
	hossvc "hos_alerter/internal/api/hos/service"
	"hos_alerter/internal/api/middleware"
	"hos_alerter/internal/common"
	"hos_alerter/internal/global"
	"hos_alerter/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// RecipientHandler xử lý request quản lý danh sách email nhận cảnh báo HOS
type RecipientHandler struct {
	store *hossvc.RecipientStore
}

// NewRecipientHandler tạo mới RecipientHandler
func NewRecipientHandler() (*RecipientHandler, error) {
	store, err := hossvc.NewRecipientStore()
	if err != nil {
		return nil, fmt.Errorf("failed to create recipient store: %w", err)
	}

	return &RecipientHandler{store: store}, nil
}

// HandleEnsureConfiguration đảm bảo tenant trong session có configuration document.
// Panel gọi endpoint này khi load, trước khi list/add/remove.
func (h *RecipientHandler) HandleEnsureConfiguration(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		databaseName := middleware.DatabaseNameFromContext(c)

		created, err := h.store.EnsureTenantConfiguration(c.Context(), databaseName)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		if created {
			logger.LogAction("hos.configuration.create", c, map[string]interface{}{
				"database_name": databaseName,
			})
		}

		basehdl.HandleResponse(c, hosdto.EnsureConfigurationResponse{
			DatabaseName: databaseName,
			Created:      created,
		}, nil)
		return nil
	})
}

// HandleListRecipients trả về danh sách recipient hiện tại của tenant trong session
func (h *RecipientHandler) HandleListRecipients(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		databaseName := middleware.DatabaseNameFromContext(c)

		recipients, err := h.store.ListRecipients(c.Context(), databaseName)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		basehdl.HandleResponse(c, hosdto.RecipientListResponse{
			DatabaseName: databaseName,
			Recipients:   recipients,
			Count:        len(recipients),
		}, nil)
		return nil
	})
}

// HandleAddRecipient thêm một email vào danh sách nhận cảnh báo của tenant trong session
func (h *RecipientHandler) HandleAddRecipient(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		databaseName, err := requireDatabaseName(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		var input hosdto.AddRecipientInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := global.Validate.Struct(input); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Email không hợp lệ hoặc bị thiếu",
				common.StatusBadRequest,
				err.Error(),
			))
			return nil
		}

		recipients, err := h.store.AddRecipient(c.Context(), databaseName, input.Email)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogAction("hos.recipient.add", c, map[string]interface{}{
			"database_name": databaseName,
			"email":         input.Email,
		})

		basehdl.HandleResponseWithMessage(c, hosdto.RecipientListResponse{
			DatabaseName: databaseName,
			Recipients:   recipients,
			Count:        len(recipients),
		}, "Đã thêm recipient vào danh sách HOS alert", nil)
		return nil
	})
}

// HandleRemoveRecipient gỡ một email khỏi danh sách nhận cảnh báo của tenant trong session.
// Gỡ email không có trong danh sách vẫn trả về thành công (idempotent).
func (h *RecipientHandler) HandleRemoveRecipient(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		databaseName, err := requireDatabaseName(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		var input hosdto.RemoveRecipientInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := global.Validate.Struct(input); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Email không hợp lệ hoặc bị thiếu",
				common.StatusBadRequest,
				err.Error(),
			))
			return nil
		}

		recipients, err := h.store.RemoveRecipient(c.Context(), databaseName, input.Email)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogAction("hos.recipient.remove", c, map[string]interface{}{
			"database_name": databaseName,
			"email":         input.Email,
		})

		basehdl.HandleResponseWithMessage(c, hosdto.RecipientListResponse{
			DatabaseName: databaseName,
			Recipients:   recipients,
			Count:        len(recipients),
		}, "Đã gỡ recipient khỏi danh sách HOS alert", nil)
		return nil
	})
}

// requireDatabaseName lấy database name từ session context, lỗi validation nếu rỗng.
// Add/remove bắt buộc có tenant; list và ensure chấp nhận rỗng (trả về rỗng / no-op).
func requireDatabaseName(c fiber.Ctx) (string, error) {
	databaseName := middleware.DatabaseNameFromContext(c)
	if databaseName == "" {
		return "", common.NewError(
			common.ErrCodeValidationInput,
			"Thiếu database name trong session (header X-Database-Name)",
			common.StatusBadRequest,
			nil,
		)
	}
	return databaseName, nil
}
