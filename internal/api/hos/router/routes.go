// Package hosrouter đăng ký các route thuộc domain HOS lên API v1.
package hosrouter

import (
	"fmt"

	hoshdl "hos_alerter/internal/api/hos/handler"
	"hos_alerter/internal/api/middleware"
	apirouter "hos_alerter/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký tất cả route HOS lên v1.
func Register(v1 fiber.Router) error {
	recipientHandler, err := hoshdl.NewRecipientHandler()
	if err != nil {
		return fmt.Errorf("create hos recipient handler: %w", err)
	}

	// Group chung cho cả domain: session middleware gắn đúng một lần,
	// mọi route bên dưới đều đi qua nó đúng một lần mỗi request.
	config := apirouter.GroupWithMiddleware(v1, "/hos/config", middleware.SessionContextMiddleware())

	config.Post("/ensure", recipientHandler.HandleEnsureConfiguration)
	config.Get("/recipients", recipientHandler.HandleListRecipients)
	config.Post("/recipients", recipientHandler.HandleAddRecipient)
	config.Delete("/recipients", recipientHandler.HandleRemoveRecipient)

	return nil
}
