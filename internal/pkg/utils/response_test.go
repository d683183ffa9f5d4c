package utils

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pratik-mahalle/cloudmgr/internal/pkg/errors"
)

func TestWriteErrEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"app error", errors.NotFound("Resource"), http.StatusNotFound, errors.ErrCodeNotFound},
		{"plain error", stderrors.New("boom"), http.StatusInternalServerError, errors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			if err := WriteErr(rr, tt.err); err != nil {
				t.Fatalf("WriteErr() error = %v", err)
			}
			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}

			var body ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success {
				t.Error("success should be false")
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestWriteMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	_ = WriteMessage(rr, http.StatusOK, "Deleted")
	if got := rr.Body.String(); got != "{\"message\":\"Deleted\"}\n" {
		t.Errorf("body = %q", got)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}
