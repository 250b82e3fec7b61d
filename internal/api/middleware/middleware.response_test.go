package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"hos_alerter/internal/common"
)

func TestHandleErrorResponse_EnvelopeCoSeverityVaAutoDismiss(t *testing.T) {
	app := fiber.New()
	app.Get("/fail", func(c fiber.Ctx) error {
		HandleErrorResponse(c, common.NewError(
			common.ErrCodeAuthToken,
			"Thiếu token xác thực",
			common.StatusUnauthorized,
			nil,
		))
		return nil
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
	if err != nil {
		t.Fatalf("request lỗi: %v", err)
	}
	if resp.StatusCode != common.StatusUnauthorized {
		t.Fatalf("status phải là 401, có %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("đọc body lỗi: %v", err)
	}
	var envelope map[string]interface{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("body phải là JSON, có %q: %v", body, err)
	}

	if envelope["status"] != "error" {
		t.Errorf("status phải là error, có %v", envelope["status"])
	}
	if envelope["code"] != common.ErrCodeAuthToken.Code {
		t.Errorf("code phải là %s, có %v", common.ErrCodeAuthToken.Code, envelope["code"])
	}
	if envelope["severity"] != "danger" {
		t.Errorf("lỗi auth phải có severity danger, có %v", envelope["severity"])
	}
	if ms, ok := envelope["autoDismissMs"].(float64); !ok || ms != 5000 {
		t.Errorf("envelope phải có autoDismissMs=5000, có %v", envelope["autoDismissMs"])
	}
}
