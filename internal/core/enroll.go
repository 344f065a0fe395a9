package core

import (
	"context"
	"fmt"

	"github.com/teacherspet/roster/internal/logging"
)

// EnrollResult reports the outcome of a batch enrollment.
type EnrollResult struct {
	Added           int `json:"addedCount"`
	AlreadyEnrolled int `json:"alreadyEnrolledCount"`
}

// EnrollStudents adds a batch of the teacher's students to one of the
// teacher's classes.
//
// The class must belong to the teacher (otherwise not-found) and
// every student in the batch must belong to the teacher (otherwise
// forbidden, with no partial effect). Students already enrolled are
// skipped and counted; a batch where every student was already
// enrolled succeeds with Added == 0.
func (s *Service) EnrollStudents(ctx context.Context, teacherID, classID int64, studentIDs []int64) (*EnrollResult, error) {
	if len(studentIDs) == 0 {
		return nil, NewValidationError("studentIds must be a non-empty array")
	}

	if _, err := s.gateway.GetClass(ctx, teacherID, classID); err != nil {
		return nil, err
	}

	unique := dedupe(studentIDs)
	owned, err := s.gateway.CountOwnedStudents(ctx, teacherID, unique)
	if err != nil {
		return nil, fmt.Errorf("verify students: %w", err)
	}
	if owned != len(unique) {
		return nil, ErrForbidden
	}

	result := &EnrollResult{}
	err = s.gateway.InTx(ctx, func(tx Tx) error {
		for _, studentID := range unique {
			inserted, err := tx.AddEnrollment(ctx, classID, studentID)
			if err != nil {
				return err
			}
			if inserted {
				result.Added++
			} else {
				result.AlreadyEnrolled++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enroll students: %w", err)
	}

	logging.FromContext(ctx).Info("students enrolled",
		"class_id", classID,
		"added", result.Added,
		"already_enrolled", result.AlreadyEnrolled,
	)
	return result, nil
}

// RemoveStudent removes one student from one class.
//
// Class and student ownership are checked independently so the error
// names the entity that is actually missing. Removing a pair that is
// not enrolled is a not-found, not a no-op.
func (s *Service) RemoveStudent(ctx context.Context, teacherID, classID, studentID int64) error {
	if _, err := s.gateway.GetClass(ctx, teacherID, classID); err != nil {
		return err
	}
	if _, err := s.gateway.GetStudent(ctx, teacherID, studentID); err != nil {
		return err
	}
	return s.gateway.DeleteEnrollment(ctx, classID, studentID)
}

// DeleteClass removes one of the teacher's classes and all of its
// enrollments in a single transaction.
func (s *Service) DeleteClass(ctx context.Context, teacherID, classID int64) error {
	if _, err := s.gateway.GetClass(ctx, teacherID, classID); err != nil {
		return err
	}

	var removed int64
	err := s.gateway.InTx(ctx, func(tx Tx) error {
		n, err := tx.DeleteEnrollmentsByClass(ctx, classID)
		if err != nil {
			return err
		}
		removed = n

		deleted, err := tx.DeleteClass(ctx, teacherID, classID)
		if err != nil {
			return err
		}
		if !deleted {
			return &NotFoundError{Entity: "class"}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info("class deleted",
		"class_id", classID,
		"enrollments_removed", removed,
	)
	return nil
}

// dedupe preserves first-seen order.
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
