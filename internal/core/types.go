package core

import "time"

// CSV column labels recognized by the import pipeline. These match the
// downloadable roster template; header matching is exact.
const (
	ColFirstName   = "First Name"
	ColLastName    = "Last Name"
	ColDateOfBirth = "Date of Birth"
	ColGender      = "Gender"
	ColGradeLevel  = "Grade Level"
	ColAttendance  = "Attendance %"
	ColAverage     = "Average Grade"
	ColIncidents   = "Behavioral Incidents"
	ColNotes       = "Notes"
)

// Genders accepted by the row validator, in canonical form. Matching
// is case-insensitive; the canonical spelling is what gets stored.
var CanonicalGenders = []string{"Male", "Female", "Other", "Prefer not to say"}

// Student is a roster entry owned by a single teacher.
//
// Optional fields are pointers: nil means the value was never
// provided, which is distinct from a zero value.
type Student struct {
	ID          int64      `json:"id"`
	TeacherID   int64      `json:"-"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	GradeLevel  *int       `json:"gradeLevel,omitempty"`
	Attendance  *float64   `json:"attendancePct,omitempty"`
	Average     *float64   `json:"averageGrade,omitempty"`
	Incidents   *int       `json:"behavioralIncidents,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Class is a course section owned by a single teacher.
type Class struct {
	ID          int64     `json:"id"`
	TeacherID   int64     `json:"-"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Year        int       `json:"year"`
	Semester    string    `json:"semester"`
	CreatedAt   time.Time `json:"createdAt"`
}

// StudentFilter selects and pages an owner-scoped student listing.
type StudentFilter struct {
	// Search is a case-insensitive substring matched against first OR
	// last name. Empty means no name filtering.
	Search string

	// Grade restricts results to one grade level. Nil means all grades.
	Grade *int

	// Page is 1-based. Values below 1 are clamped to 1.
	Page int

	// PageSize defaults to DefaultPageSize when zero or negative.
	PageSize int
}

// DefaultPageSize is used when a listing request does not specify one.
const DefaultPageSize = 10

// StudentPage is one page of an owner-scoped student listing.
type StudentPage struct {
	Items      []Student `json:"students"`
	TotalItems int       `json:"totalItems"`
	TotalPages int       `json:"totalPages"`
	Page       int       `json:"page"`
}
