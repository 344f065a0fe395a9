package web

import (
	"net/http"
	"strconv"

	"github.com/teacherspet/roster/internal/core"
)

// handleListStudents serves GET /api/students with optional search,
// grade, page and pageSize query parameters.
func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := core.StudentFilter{
		Search: q.Get("search"),
	}
	if raw := q.Get("grade"); raw != "" {
		grade, err := strconv.Atoi(raw)
		if err != nil {
			s.respondError(w, r, core.NewValidationError("grade must be an integer"))
			return
		}
		filter.Grade = &grade
	}
	// Malformed paging values fall back to defaults rather than
	// failing the request.
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(q.Get("pageSize")); err == nil {
		filter.PageSize = size
	}

	page, err := s.service.ListStudents(r.Context(), teacherID(r), filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// handleCreateStudent serves POST /api/students.
func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var in core.StudentInput
	if err := s.decodeJSON(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}

	student, err := s.service.CreateStudent(r.Context(), teacherID(r), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, student)
}

// handleGetStudent serves GET /api/students/{studentID}.
func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := pathID(r, "studentID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	student, err := s.service.GetStudent(r.Context(), teacherID(r), studentID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

// handleUpdateStudent serves PUT /api/students/{studentID}.
func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := pathID(r, "studentID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var in core.StudentInput
	if err := s.decodeJSON(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}

	student, err := s.service.UpdateStudent(r.Context(), teacherID(r), studentID, in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

// handleDeleteStudent serves DELETE /api/students/{studentID}.
func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := pathID(r, "studentID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.service.DeleteStudent(r.Context(), teacherID(r), studentID); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "student deleted"})
}
