// Package router chứa các tiện ích đăng ký route dùng chung cho các domain router.
package router

import (
	"github.com/gofiber/fiber/v3"
)

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// Router gom app Fiber để các domain router đăng ký route lên đó.
type Router struct {
	app *fiber.App
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// App trả về app Fiber gốc.
func (r *Router) App() *fiber.App {
	return r.app
}

// GroupWithMiddleware tạo group với prefix và gắn middleware qua .Use() method.
// Các route đăng ký trên group trả về dùng path tương đối (không lặp lại prefix).
//
// Fiber v3 KHÔNG gọi middleware khi truyền trực tiếp router.Get(path, middleware, handler);
// phải tạo group và gắn middleware bằng .Use() như dưới đây. Mỗi prefix chỉ tạo
// group MỘT lần: mỗi lần .Use() thêm một bản middleware chạy trên mọi request khớp prefix.
func GroupWithMiddleware(router fiber.Router, prefix string, middlewares ...fiber.Handler) fiber.Router {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}
	return routeGroup
}
