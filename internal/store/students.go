package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/teacherspet/roster/internal/core"
)

const studentColumns = `id, teacher_id, first_name, last_name, date_of_birth, gender,
	grade_level, attendance_pct, average_grade, behavioral_incidents, notes, created_at`

func (s *Store) InsertStudent(ctx context.Context, st *core.Student) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO students (teacher_id, first_name, last_name, date_of_birth, gender,
			grade_level, attendance_pct, average_grade, behavioral_incidents, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		st.TeacherID, st.FirstName, st.LastName, dateArg(st.DateOfBirth), st.Gender,
		st.GradeLevel, st.Attendance, st.Average, st.Incidents, st.Notes,
	).Scan(&id)
	if err != nil {
		return 0, storageErr("insert student", err)
	}
	return id, nil
}

func (s *Store) GetStudent(ctx context.Context, teacherID, studentID int64) (*core.Student, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+studentColumns+`
		FROM students
		WHERE id = $1 AND teacher_id = $2`,
		studentID, teacherID,
	)

	st, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &core.NotFoundError{Entity: "student"}
		}
		return nil, storageErr("get student", err)
	}
	return st, nil
}

func (s *Store) UpdateStudent(ctx context.Context, st *core.Student) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE students
		SET first_name = $1, last_name = $2, date_of_birth = $3, gender = $4,
			grade_level = $5, attendance_pct = $6, average_grade = $7,
			behavioral_incidents = $8, notes = $9
		WHERE id = $10 AND teacher_id = $11`,
		st.FirstName, st.LastName, dateArg(st.DateOfBirth), st.Gender,
		st.GradeLevel, st.Attendance, st.Average, st.Incidents, st.Notes,
		st.ID, st.TeacherID,
	)
	if err != nil {
		return storageErr("update student", err)
	}
	if tag.RowsAffected() == 0 {
		return &core.NotFoundError{Entity: "student"}
	}
	return nil
}

func (s *Store) DeleteStudent(ctx context.Context, teacherID, studentID int64) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM students WHERE id = $1 AND teacher_id = $2`,
		studentID, teacherID,
	)
	if err != nil {
		return storageErr("delete student", err)
	}
	if tag.RowsAffected() == 0 {
		return &core.NotFoundError{Entity: "student"}
	}
	return nil
}

// buildStudentFilter assembles the owner-scoped WHERE conditions for a
// student listing.
func buildStudentFilter(teacherID int64, f core.StudentFilter) *whereBuilder {
	wb := &whereBuilder{}
	wb.add("teacher_id = $%d", teacherID)
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		wb.add("(first_name ILIKE $%d OR last_name ILIKE $%d)", pattern, pattern)
	}
	if f.Grade != nil {
		wb.add("grade_level = $%d", *f.Grade)
	}
	return wb
}

func (s *Store) ListStudents(ctx context.Context, teacherID int64, f core.StudentFilter) ([]core.Student, int, error) {
	wb := buildStudentFilter(teacherID, f)
	where, args := wb.clause()

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM students"+where, args...).Scan(&total); err != nil {
		return nil, 0, storageErr("count students", err)
	}

	offset := (f.Page - 1) * f.PageSize
	query := fmt.Sprintf(
		"SELECT %s FROM students%s ORDER BY last_name, first_name, id LIMIT $%d OFFSET $%d",
		studentColumns, where, wb.nextArgIndex(), wb.nextArgIndex()+1,
	)
	args = append(args, f.PageSize, offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, storageErr("list students", err)
	}
	defer rows.Close()

	students, err := collectStudents(rows)
	if err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

func (s *Store) CountOwnedStudents(ctx context.Context, teacherID int64, studentIDs []int64) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT id) FROM students WHERE teacher_id = $1 AND id = ANY($2)`,
		teacherID, studentIDs,
	).Scan(&count)
	if err != nil {
		return 0, storageErr("count owned students", err)
	}
	return count, nil
}

// scanStudent reads one student row in studentColumns order.
func scanStudent(row pgx.Row) (*core.Student, error) {
	var st core.Student
	var dob pgtype.Date

	err := row.Scan(
		&st.ID, &st.TeacherID, &st.FirstName, &st.LastName, &dob, &st.Gender,
		&st.GradeLevel, &st.Attendance, &st.Average, &st.Incidents, &st.Notes,
		&st.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dob.Valid {
		t := dob.Time
		st.DateOfBirth = &t
	}
	return &st, nil
}

func collectStudents(rows pgx.Rows) ([]core.Student, error) {
	var students []core.Student
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, storageErr("scan student", err)
		}
		students = append(students, *st)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("rows error", err)
	}
	return students, nil
}

// dateArg converts an optional time into a pgtype.Date so the column
// stores a plain calendar date without timezone shift.
func dateArg(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: *t, Valid: true}
}
