package core

import "context"

// Gateway is the persistence boundary of the core. The pgx
// implementation lives in internal/store; tests use an in-memory fake.
//
// All reads and writes are scoped to a teacher ID. Implementations
// must translate their driver's no-rows condition into ErrNotFound.
type Gateway interface {
	// Students
	InsertStudent(ctx context.Context, s *Student) (int64, error)
	GetStudent(ctx context.Context, teacherID, studentID int64) (*Student, error)
	UpdateStudent(ctx context.Context, s *Student) error
	DeleteStudent(ctx context.Context, teacherID, studentID int64) error
	ListStudents(ctx context.Context, teacherID int64, f StudentFilter) ([]Student, int, error)

	// CountOwnedStudents reports how many of the given student IDs
	// exist and belong to the teacher. Duplicate IDs count once.
	CountOwnedStudents(ctx context.Context, teacherID int64, studentIDs []int64) (int, error)

	// Classes
	InsertClass(ctx context.Context, c *Class) (int64, error)
	GetClass(ctx context.Context, teacherID, classID int64) (*Class, error)
	ListClasses(ctx context.Context, teacherID int64) ([]Class, error)
	ListClassStudents(ctx context.Context, teacherID, classID int64) ([]Student, error)

	// DeleteEnrollment removes one student/class pair. Returns
	// ErrNotFound when the pair does not exist.
	DeleteEnrollment(ctx context.Context, classID, studentID int64) error

	// InTx runs fn inside a transaction. A non-nil error from fn
	// rolls the transaction back and is returned unchanged.
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx exposes the mutations that must run atomically.
type Tx interface {
	// AddEnrollment inserts a student/class pair, skipping on
	// conflict. Returns true when a new row was inserted.
	AddEnrollment(ctx context.Context, classID, studentID int64) (bool, error)

	// DeleteEnrollmentsByClass removes all enrollments for a class
	// and returns how many were removed.
	DeleteEnrollmentsByClass(ctx context.Context, classID int64) (int64, error)

	// DeleteClass removes the class row, owner-scoped. Returns false
	// when no row was deleted.
	DeleteClass(ctx context.Context, teacherID, classID int64) (bool, error)
}
