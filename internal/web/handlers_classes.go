package web

import (
	"net/http"

	"github.com/teacherspet/roster/internal/core"
)

// handleListClasses serves GET /api/classes.
func (s *Server) handleListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := s.service.ListClasses(r.Context(), teacherID(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if classes == nil {
		classes = []core.Class{}
	}
	writeJSON(w, http.StatusOK, classes)
}

// handleCreateClass serves POST /api/classes.
func (s *Server) handleCreateClass(w http.ResponseWriter, r *http.Request) {
	var in core.ClassInput
	if err := s.decodeJSON(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}

	class, err := s.service.CreateClass(r.Context(), teacherID(r), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, class)
}

// handleGetClass serves GET /api/classes/{classID}.
func (s *Server) handleGetClass(w http.ResponseWriter, r *http.Request) {
	classID, err := pathID(r, "classID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	class, err := s.service.GetClass(r.Context(), teacherID(r), classID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, class)
}

// handleDeleteClass serves DELETE /api/classes/{classID}. The class
// and all of its enrollments are removed atomically.
func (s *Server) handleDeleteClass(w http.ResponseWriter, r *http.Request) {
	classID, err := pathID(r, "classID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.service.DeleteClass(r.Context(), teacherID(r), classID); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "class deleted"})
}

// handleListClassStudents serves GET /api/classes/{classID}/students.
func (s *Server) handleListClassStudents(w http.ResponseWriter, r *http.Request) {
	classID, err := pathID(r, "classID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	students, err := s.service.ListClassStudents(r.Context(), teacherID(r), classID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if students == nil {
		students = []core.Student{}
	}
	writeJSON(w, http.StatusOK, students)
}

// enrollRequest is the body for POST /api/classes/{classID}/students.
type enrollRequest struct {
	StudentIDs []int64 `json:"studentIds" validate:"required,min=1,dive,gt=0"`
}

// handleEnrollStudents serves POST /api/classes/{classID}/students.
func (s *Server) handleEnrollStudents(w http.ResponseWriter, r *http.Request) {
	classID, err := pathID(r, "classID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req enrollRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	result, err := s.service.EnrollStudents(r.Context(), teacherID(r), classID, req.StudentIDs)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	msg := "students enrolled"
	if result.Added == 0 {
		msg = "all selected students were already in this class"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":              msg,
		"addedCount":           result.Added,
		"alreadyEnrolledCount": result.AlreadyEnrolled,
	})
}

// handleRemoveStudent serves
// DELETE /api/classes/{classID}/students/{studentID}.
func (s *Server) handleRemoveStudent(w http.ResponseWriter, r *http.Request) {
	classID, err := pathID(r, "classID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	studentID, err := pathID(r, "studentID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.service.RemoveStudent(r.Context(), teacherID(r), classID, studentID); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "student removed from class"})
}
