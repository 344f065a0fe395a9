package web

// context.go carries the authenticated teacher identity through the
// request context. The auth middleware sets it; handlers read it.

import (
	"net/http"

	"github.com/teacherspet/roster/internal/web/middleware"
)

// teacherID extracts the authenticated teacher's ID from the request.
// The auth middleware guarantees it is present on /api routes.
func teacherID(r *http.Request) int64 {
	return middleware.TeacherID(r.Context())
}
