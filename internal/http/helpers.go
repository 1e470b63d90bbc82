package http

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nhatro/internal/core"
	"nhatro/internal/remote"
)

const (
	msgMissingRequired = "Vui lòng điền đầy đủ thông tin bắt buộc"
	msgGenericFailure  = "Có lỗi xảy ra, vui lòng thử lại"
	msgLoadFailure     = "Không thể tải dữ liệu, vui lòng thử lại"
)

// backendErrorMessage picks the text shown to the operator for a failed
// mutation. Backend-provided messages pass through verbatim; everything
// else collapses to the generic fallback.
func backendErrorMessage(err error) string {
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var valErr *core.ValidationError
	if errors.As(err, &valErr) {
		return msgMissingRequired
	}
	return msgGenericFailure
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// formValue returns the sanitized form value for key.
func formValue(r *http.Request, key string) string {
	return sanitizeInput(r.Form.Get(key))
}
