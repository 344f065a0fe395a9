package web

// handlers_common.go holds decoding helpers shared by the JSON
// handlers.

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/teacherspet/roster/internal/core"
)

// decodeJSON reads the request body into v and runs struct
// validation. Failures come back as core.ValidationError so they map
// to HTTP 400.
func (s *Server) decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return core.NewValidationError("invalid JSON body: %v", err)
	}

	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("field %s failed rule %q", fe.Field(), fe.Tag()))
			}
			return &core.ValidationError{Messages: msgs}
		}
		return core.NewValidationError("invalid request body")
	}
	return nil
}

// pathID parses a numeric URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, core.NewValidationError("%s must be a positive integer", name)
	}
	return id, nil
}
