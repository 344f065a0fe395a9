package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Semesters accepted on class creation.
var validSemesters = map[string]bool{"Fall": true, "Spring": true, "Summer": true}

// Service implements the roster operations over a Gateway.
type Service struct {
	gateway Gateway
}

// NewService creates a Service backed by the given gateway.
func NewService(gateway Gateway) *Service {
	return &Service{gateway: gateway}
}

// StudentInput carries the mutable fields of a student for create and
// update operations.
type StudentInput struct {
	FirstName   string     `json:"firstName" validate:"required"`
	LastName    string     `json:"lastName" validate:"required"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Gender      *string    `json:"gender"`
	GradeLevel  *int       `json:"gradeLevel" validate:"omitempty,min=1,max=12"`
	Attendance  *float64   `json:"attendancePct" validate:"omitempty,min=0,max=100"`
	Average     *float64   `json:"averageGrade" validate:"omitempty,min=0,max=100"`
	Incidents   *int       `json:"behavioralIncidents" validate:"omitempty,min=0"`
	Notes       *string    `json:"notes"`
}

// normalize trims names and canonicalizes gender, enforcing the same
// rules the CSV row validator applies.
func (in *StudentInput) normalize() error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	var errs []string
	if in.FirstName == "" {
		errs = append(errs, "First Name is required")
	}
	if in.LastName == "" {
		errs = append(errs, "Last Name is required")
	}
	if in.Gender != nil {
		canonical, ok := canonicalGender(strings.TrimSpace(*in.Gender))
		if !ok {
			errs = append(errs, fmt.Sprintf("Gender %q must be one of: %s", *in.Gender, strings.Join(CanonicalGenders, ", ")))
		} else {
			in.Gender = &canonical
		}
	}
	if in.GradeLevel != nil && (*in.GradeLevel < 1 || *in.GradeLevel > 12) {
		errs = append(errs, "Grade Level must be between 1 and 12")
	}
	if in.Attendance != nil && (*in.Attendance < 0 || *in.Attendance > 100) {
		errs = append(errs, "Attendance % must be between 0 and 100")
	}
	if in.Average != nil && (*in.Average < 0 || *in.Average > 100) {
		errs = append(errs, "Average Grade must be between 0 and 100")
	}
	if in.Incidents != nil && *in.Incidents < 0 {
		errs = append(errs, "Behavioral Incidents must be non-negative")
	}
	if len(errs) > 0 {
		return &ValidationError{Messages: errs}
	}
	return nil
}

func (in *StudentInput) apply(s *Student) {
	s.FirstName = in.FirstName
	s.LastName = in.LastName
	s.DateOfBirth = in.DateOfBirth
	s.Gender = in.Gender
	s.GradeLevel = in.GradeLevel
	s.Attendance = in.Attendance
	s.Average = in.Average
	s.Incidents = in.Incidents
	s.Notes = in.Notes
}

// CreateStudent adds a single student to the teacher's roster.
func (s *Service) CreateStudent(ctx context.Context, teacherID int64, in StudentInput) (*Student, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	student := &Student{TeacherID: teacherID}
	in.apply(student)

	id, err := s.gateway.InsertStudent(ctx, student)
	if err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}
	student.ID = id
	return student, nil
}

// GetStudent fetches one of the teacher's students.
func (s *Service) GetStudent(ctx context.Context, teacherID, studentID int64) (*Student, error) {
	student, err := s.gateway.GetStudent(ctx, teacherID, studentID)
	if err != nil {
		return nil, err
	}
	return student, nil
}

// UpdateStudent replaces the mutable fields of one of the teacher's
// students.
func (s *Service) UpdateStudent(ctx context.Context, teacherID, studentID int64, in StudentInput) (*Student, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	student, err := s.gateway.GetStudent(ctx, teacherID, studentID)
	if err != nil {
		return nil, err
	}

	in.apply(student)
	if err := s.gateway.UpdateStudent(ctx, student); err != nil {
		return nil, fmt.Errorf("update student: %w", err)
	}
	return student, nil
}

// DeleteStudent removes one of the teacher's students, along with any
// enrollments via the schema's cascade.
func (s *Service) DeleteStudent(ctx context.Context, teacherID, studentID int64) error {
	return s.gateway.DeleteStudent(ctx, teacherID, studentID)
}

// ClassInput carries the fields of a class for creation.
type ClassInput struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Year        int     `json:"year" validate:"required,min=1900,max=2100"`
	Semester    string  `json:"semester" validate:"required"`
}

// CreateClass adds a class to the teacher's roster.
func (s *Service) CreateClass(ctx context.Context, teacherID int64, in ClassInput) (*Class, error) {
	var errs []string
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		errs = append(errs, "name is required")
	}
	if in.Year < 1900 || in.Year > 2100 {
		errs = append(errs, "year must be between 1900 and 2100")
	}
	if !validSemesters[in.Semester] {
		errs = append(errs, "semester must be one of: Fall, Spring, Summer")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Messages: errs}
	}

	class := &Class{
		TeacherID:   teacherID,
		Name:        in.Name,
		Description: in.Description,
		Year:        in.Year,
		Semester:    in.Semester,
	}
	id, err := s.gateway.InsertClass(ctx, class)
	if err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}
	class.ID = id
	return class, nil
}

// GetClass fetches one of the teacher's classes.
func (s *Service) GetClass(ctx context.Context, teacherID, classID int64) (*Class, error) {
	return s.gateway.GetClass(ctx, teacherID, classID)
}

// ListClasses lists the teacher's classes ordered by name.
func (s *Service) ListClasses(ctx context.Context, teacherID int64) ([]Class, error) {
	return s.gateway.ListClasses(ctx, teacherID)
}

// ListClassStudents lists the students enrolled in one of the
// teacher's classes, ordered by last name, first name.
func (s *Service) ListClassStudents(ctx context.Context, teacherID, classID int64) ([]Student, error) {
	if _, err := s.gateway.GetClass(ctx, teacherID, classID); err != nil {
		return nil, err
	}
	return s.gateway.ListClassStudents(ctx, teacherID, classID)
}
