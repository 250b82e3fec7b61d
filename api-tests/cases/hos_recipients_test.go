package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"hos_alerter_tests/utils"

	"github.com/stretchr/testify/assert"
)

// waitForHealth chờ server sẵn sàng, skip toàn bộ test nếu không kết nối được
func waitForHealth(baseHost string, attempts int, interval time.Duration, t *testing.T) {
	client := &http.Client{Timeout: 2 * time.Second}
	for i := 0; i < attempts; i++ {
		resp, err := client.Get(baseHost + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(interval)
	}
	t.Skipf("Server không chạy tại %s, bỏ qua integration tests", baseHost)
}

func parseEnvelope(t *testing.T, body []byte) map[string]interface{} {
	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("không parse được JSON response: %v (body: %s)", err, string(body))
	}
	return result
}

func recipientEmails(t *testing.T, body []byte) []string {
	result := parseEnvelope(t, body)
	data, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response thiếu data object: %s", string(body))
	}
	raw, ok := data["recipients"].([]interface{})
	if !ok {
		return nil
	}
	var emails []string
	for _, entry := range raw {
		if m, ok := entry.(map[string]interface{}); ok {
			if email, ok := m["email"].(string); ok {
				emails = append(emails, email)
			}
		}
	}
	return emails
}

// TestHosRecipientFlow kiểm tra toàn bộ flow quản lý recipient:
// ensure -> list -> add -> duplicate -> remove -> idempotent remove
func TestHosRecipientFlow(t *testing.T) {
	baseHost := "http://localhost:8080"
	waitForHealth(baseHost, 10, 1*time.Second, t)

	baseURL := baseHost + "/api/v1"
	client := utils.NewHTTPClient(baseURL, 10)

	// Tenant riêng cho mỗi lần chạy để không đụng dữ liệu cũ
	tenant := fmt.Sprintf("fleet_test_%d", time.Now().UnixNano())
	client.SetDatabaseName(tenant)

	t.Run("ENSURE - Tạo configuration document cho tenant mới", func(t *testing.T) {
		resp, body, err := client.POST("/hos/config/ensure", nil)
		if err != nil {
			t.Fatalf("❌ Lỗi khi gọi ensure: %v", err)
		}
		assert.Equal(t, http.StatusOK, resp.StatusCode, "ensure phải trả về 200 (body: %s)", string(body))

		result := parseEnvelope(t, body)
		assert.Equal(t, "success", result["status"], "Status phải là success")
		data, ok := result["data"].(map[string]interface{})
		if assert.True(t, ok, "ensure phải trả về data object") {
			assert.Equal(t, true, data["created"], "tenant mới phải có created=true")
			assert.Equal(t, tenant, data["database_name"])
		}
	})

	t.Run("ENSURE - Gọi lại không tạo thêm", func(t *testing.T) {
		resp, body, err := client.POST("/hos/config/ensure", nil)
		if err != nil {
			t.Fatalf("❌ Lỗi khi gọi ensure lần 2: %v", err)
		}
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		result := parseEnvelope(t, body)
		data, _ := result["data"].(map[string]interface{})
		assert.Equal(t, false, data["created"], "ensure lần 2 phải có created=false")
	})

	t.Run("LIST - Tenant mới có danh sách rỗng", func(t *testing.T) {
		resp, body, err := client.GET("/hos/config/recipients")
		if err != nil {
			t.Fatalf("❌ Lỗi khi list recipients: %v", err)
		}
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, recipientEmails(t, body), "tenant mới phải có danh sách rỗng")
	})

	t.Run("ADD - Thêm recipient", func(t *testing.T) {
		resp, body, err := client.POST("/hos/config/recipients", map[string]interface{}{
			"email": "dispatcher@fleet.example.com",
		})
		if err != nil {
			t.Fatalf("❌ Lỗi khi add recipient: %v", err)
		}
		assert.Equal(t, http.StatusOK, resp.StatusCode, "add phải thành công (body: %s)", string(body))

		result := parseEnvelope(t, body)
		assert.Equal(t, "success", result["status"])
		assert.Equal(t, "success", result["severity"], "severity của thao tác thành công phải là success")
		assert.EqualValues(t, 5000, result["autoDismissMs"], "banner phải auto-dismiss sau 5 giây")
		assert.Equal(t, []string{"dispatcher@fleet.example.com"}, recipientEmails(t, body))
	})

	t.Run("ADD - Email trùng trả về warning 409", func(t *testing.T) {
		resp, body, err := client.POST("/hos/config/recipients", map[string]interface{}{
			"email": "dispatcher@fleet.example.com",
		})
		if err != nil {
			t.Fatalf("❌ Lỗi khi add recipient trùng: %v", err)
		}
		assert.Equal(t, http.StatusConflict, resp.StatusCode, "email trùng phải trả về 409")

		result := parseEnvelope(t, body)
		assert.Equal(t, "error", result["status"])
		assert.Equal(t, "warning", result["severity"], "duplicate là non-fatal, severity phải là warning")
	})

	t.Run("ADD - Email không hợp lệ bị từ chối trước khi gọi store", func(t *testing.T) {
		resp, body, err := client.POST("/hos/config/recipients", map[string]interface{}{
			"email": "not-an-email",
		})
		if err != nil {
			t.Fatalf("❌ Lỗi khi add email không hợp lệ: %v", err)
		}
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		result := parseEnvelope(t, body)
		assert.Equal(t, "warning", result["severity"], "lỗi validation phải là warning (body: %s)", string(body))
	})

	t.Run("REMOVE - Gỡ recipient giữ thứ tự còn lại", func(t *testing.T) {
		for _, email := range []string{"ops@fleet.example.com", "safety@fleet.example.com"} {
			if _, _, err := client.POST("/hos/config/recipients", map[string]interface{}{"email": email}); err != nil {
				t.Fatalf("❌ Lỗi khi add %s: %v", email, err)
			}
		}

		resp, body, err := client.DELETE("/hos/config/recipients", map[string]interface{}{
			"email": "dispatcher@fleet.example.com",
		})
		if err != nil {
			t.Fatalf("❌ Lỗi khi remove recipient: %v", err)
		}
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t,
			[]string{"ops@fleet.example.com", "safety@fleet.example.com"},
			recipientEmails(t, body),
			"chỉ email bị gỡ biến mất, thứ tự còn lại giữ nguyên")
	})

	t.Run("REMOVE - Email không tồn tại vẫn thành công", func(t *testing.T) {
		resp, body, err := client.DELETE("/hos/config/recipients", map[string]interface{}{
			"email": "nonexistent@fleet.example.com",
		})
		if err != nil {
			t.Fatalf("❌ Lỗi khi remove email không tồn tại: %v", err)
		}
		assert.Equal(t, http.StatusOK, resp.StatusCode, "remove phải idempotent (body: %s)", string(body))
		assert.Len(t, recipientEmails(t, body), 2, "danh sách không được thay đổi")
	})
}

// TestHosRecipientTenantNotFound kiểm tra add trên tenant chưa ensure
func TestHosRecipientTenantNotFound(t *testing.T) {
	baseHost := "http://localhost:8080"
	waitForHealth(baseHost, 10, 1*time.Second, t)

	client := utils.NewHTTPClient(baseHost+"/api/v1", 10)
	client.SetDatabaseName(fmt.Sprintf("fleet_never_ensured_%d", time.Now().UnixNano()))

	resp, body, err := client.POST("/hos/config/recipients", map[string]interface{}{
		"email": "a@x.com",
	})
	if err != nil {
		t.Fatalf("❌ Lỗi khi add trên tenant chưa ensure: %v", err)
	}
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "tenant chưa ensure phải trả về 404 (body: %s)", string(body))

	result := parseEnvelope(t, body)
	assert.Equal(t, "danger", result["severity"], "TenantNotFound là lỗi cứng, severity phải là danger")
}

// TestHosRecipientDemoTenant kiểm tra tenant demo không bao giờ được persist
func TestHosRecipientDemoTenant(t *testing.T) {
	baseHost := "http://localhost:8080"
	waitForHealth(baseHost, 10, 1*time.Second, t)

	client := utils.NewHTTPClient(baseHost+"/api/v1", 10)
	client.SetDatabaseName("demo")

	resp, body, err := client.POST("/hos/config/ensure", nil)
	if err != nil {
		t.Fatalf("❌ Lỗi khi ensure demo: %v", err)
	}
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := parseEnvelope(t, body)
	data, _ := result["data"].(map[string]interface{})
	assert.Equal(t, false, data["created"], "tenant demo không được tạo document")

	resp, body, err = client.GET("/hos/config/recipients")
	if err != nil {
		t.Fatalf("❌ Lỗi khi list demo: %v", err)
	}
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, recipientEmails(t, body), "tenant demo phải luôn có danh sách rỗng")
}
