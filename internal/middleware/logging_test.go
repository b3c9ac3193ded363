package middleware

import (
	"bytes"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	pkghttp "github.com/nisantasi/storefront/pkg/http"
)

func TestSecureLogger_RedactsSensitiveQuery(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := SecureLogger(logger, nil)(okHandler())

	req := httptest.NewRequest("GET", "/api/auth/verify-email?code=123456", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	out := buf.String()
	if strings.Contains(out, "123456") {
		t.Errorf("verification code leaked into log: %s", out)
	}
	if !strings.Contains(out, "[REDACTED]") {
		t.Errorf("expected redaction marker in log: %s", out)
	}
}

func TestSecureLogger_KeepsHarmlessQuery(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := SecureLogger(logger, nil)(okHandler())

	req := httptest.NewRequest("GET", "/api/products?category=babet&sort=priceLow", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	out := buf.String()
	if !strings.Contains(out, "category=babet") {
		t.Errorf("harmless query should be logged: %s", out)
	}
}

func TestSecureLogger_ClientIPFromTrustedProxy(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ipConfig := &pkghttp.IPConfig{TrustedProxies: []string{"10.0.0.0/8"}}
	handler := SecureLogger(logger, ipConfig)(okHandler())

	req := httptest.NewRequest("GET", "/api/products", nil)
	req.RemoteAddr = "10.0.0.1:443"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if !strings.Contains(buf.String(), "203.0.113.7") {
		t.Errorf("expected forwarded client IP in log: %s", buf.String())
	}
}
