package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date layouts accepted for the Date of Birth column.
var dateLayouts = []string{"2006-01-02", "01/02/2006", "1/2/2006"}

// ValidateRow validates one CSV data row and normalizes it into a
// Student. Input is raw cell text keyed by column label.
//
// All rules are checked; errors accumulate rather than short-circuit,
// so a row missing a name AND carrying a bad grade reports both.
// When the returned error list is non-empty the row is rejected and
// the returned Student must be discarded.
func ValidateRow(row map[string]string) (Student, []string) {
	var s Student
	var errs []string

	s.FirstName = strings.TrimSpace(row[ColFirstName])
	if s.FirstName == "" {
		errs = append(errs, "First Name is required")
	}

	s.LastName = strings.TrimSpace(row[ColLastName])
	if s.LastName == "" {
		errs = append(errs, "Last Name is required")
	}

	if raw := strings.TrimSpace(row[ColDateOfBirth]); raw != "" {
		dob, err := parseDate(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Date of Birth %q is not a valid date (use YYYY-MM-DD)", raw))
		} else {
			s.DateOfBirth = &dob
		}
	}

	if raw := strings.TrimSpace(row[ColGender]); raw != "" {
		canonical, ok := canonicalGender(raw)
		if !ok {
			errs = append(errs, fmt.Sprintf("Gender %q must be one of: %s", raw, strings.Join(CanonicalGenders, ", ")))
		} else {
			s.Gender = &canonical
		}
	}

	if raw := strings.TrimSpace(row[ColGradeLevel]); raw != "" {
		grade, err := strconv.Atoi(raw)
		if err != nil || grade < 1 || grade > 12 {
			errs = append(errs, fmt.Sprintf("Grade Level %q must be a whole number between 1 and 12", raw))
		} else {
			s.GradeLevel = &grade
		}
	}

	if v, msg := parsePercent(row[ColAttendance], "Attendance %"); msg != "" {
		errs = append(errs, msg)
	} else {
		s.Attendance = v
	}

	if v, msg := parsePercent(row[ColAverage], "Average Grade"); msg != "" {
		errs = append(errs, msg)
	} else {
		s.Average = v
	}

	if raw := strings.TrimSpace(row[ColIncidents]); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs = append(errs, fmt.Sprintf("Behavioral Incidents %q must be a non-negative whole number", raw))
		} else {
			s.Incidents = &n
		}
	}

	if raw := strings.TrimSpace(row[ColNotes]); raw != "" {
		s.Notes = &raw
	}

	return s, errs
}

// parseDate tries each accepted layout in order.
func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// canonicalGender matches raw against the accepted set, ignoring
// case, and returns the canonical spelling.
func canonicalGender(raw string) (string, bool) {
	for _, g := range CanonicalGenders {
		if strings.EqualFold(raw, g) {
			return g, true
		}
	}
	return "", false
}

// parsePercent validates an optional 0-100 numeric column. It returns
// a nil value and empty message when the cell is blank.
func parsePercent(raw, label string) (*float64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ""
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v > 100 {
		return nil, fmt.Sprintf("%s %q must be a number between 0 and 100", label, raw)
	}
	return &v, ""
}
