package web

// errors.go maps core errors to HTTP responses.
//
// Every error is logged with full technical detail and the request ID
// server-side; clients receive a sanitized JSON body with a stable
// machine-readable code. Internal failures never leak detail.

import (
	"errors"
	"net/http"

	"github.com/teacherspet/roster/internal/core"
	"github.com/teacherspet/roster/internal/logging"
)

// ErrorResponse is the JSON body for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondError translates err into an HTTP status and JSON body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classifyError(err)

	logFn := logging.FromContext(r.Context()).Warn
	if status >= http.StatusInternalServerError {
		logFn = logging.FromContext(r.Context()).Error
	}
	logFn("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", body.Code,
	)

	writeJSON(w, status, body)
}

// classifyError maps a core error to a status code and client body.
func classifyError(err error) (int, ErrorResponse) {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, ErrorResponse{Error: verr.Error(), Code: "VALIDATION_FAILED"}
	}

	if errors.Is(err, core.ErrUnsupportedFileType) {
		return http.StatusBadRequest, ErrorResponse{Error: core.ErrUnsupportedFileType.Error(), Code: "UNSUPPORTED_FILE_TYPE"}
	}

	if errors.Is(err, core.ErrNotFound) {
		msg := "not found"
		var nfe *core.NotFoundError
		if errors.As(err, &nfe) {
			msg = nfe.Error()
		}
		return http.StatusNotFound, ErrorResponse{Error: msg, Code: "NOT_FOUND"}
	}

	if errors.Is(err, core.ErrForbidden) {
		return http.StatusForbidden, ErrorResponse{
			Error: "one or more students do not belong to you",
			Code:  "FORBIDDEN",
		}
	}

	var serr *core.StorageError
	if errors.As(err, &serr) {
		return http.StatusInternalServerError, ErrorResponse{
			Error: "a temporary storage error occurred, please retry",
			Code:  "STORAGE",
		}
	}

	return http.StatusInternalServerError, ErrorResponse{
		Error: "an internal error occurred",
		Code:  "INTERNAL",
	}
}
