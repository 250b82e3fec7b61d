// Package utils chứa HTTP client dùng chung cho các integration test.
package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient là wrapper quanh http.Client cho các API test.
// Tự động gắn Authorization và X-Database-Name header nếu được set.
type HTTPClient struct {
	baseURL      string
	client       *http.Client
	token        string
	databaseName string
}

// NewHTTPClient tạo mới HTTPClient với timeout (giây)
func NewHTTPClient(baseURL string, timeoutSeconds int) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

// SetToken set bearer token cho các request tiếp theo
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// SetDatabaseName set tenant database name (header X-Database-Name) cho các request tiếp theo
func (c *HTTPClient) SetDatabaseName(name string) {
	c.databaseName = name
}

func (c *HTTPClient) do(method, path string, payload interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal payload: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.databaseName != "" {
		req.Header.Set("X-Database-Name", c.databaseName)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, err
	}
	return resp, body, nil
}

// GET gửi GET request
func (c *HTTPClient) GET(path string) (*http.Response, []byte, error) {
	return c.do(http.MethodGet, path, nil)
}

// POST gửi POST request với JSON payload
func (c *HTTPClient) POST(path string, payload interface{}) (*http.Response, []byte, error) {
	return c.do(http.MethodPost, path, payload)
}

// DELETE gửi DELETE request với JSON payload
func (c *HTTPClient) DELETE(path string, payload interface{}) (*http.Response, []byte, error) {
	return c.do(http.MethodDelete, path, payload)
}
