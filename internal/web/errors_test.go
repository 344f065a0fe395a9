package web

import (
	"errors"
	"net/http"
	"testing"

	"github.com/teacherspet/roster/internal/core"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", core.NewValidationError("bad field"), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"unsupported file", core.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{"not found sentinel", core.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"not found entity", &core.NotFoundError{Entity: "class"}, http.StatusNotFound, "NOT_FOUND"},
		{"plain error", errors.New("x"), http.StatusInternalServerError, "INTERNAL"},
		{"forbidden", core.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"storage", &core.StorageError{Op: "insert student", Err: errors.New("conn refused")}, http.StatusInternalServerError, "STORAGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := classifyError(tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
		})
	}
}

func TestClassifyError_InternalHidesDetail(t *testing.T) {
	_, body := classifyError(errors.New("pq: secret table missing"))
	if body.Error != "an internal error occurred" {
		t.Errorf("internal error leaked detail: %q", body.Error)
	}
}

func TestClassifyError_NotFoundNamesEntity(t *testing.T) {
	_, body := classifyError(&core.NotFoundError{Entity: "student"})
	if body.Error != "student not found" {
		t.Errorf("error = %q, want %q", body.Error, "student not found")
	}
}
