package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/teacherspet/roster/internal/core"
)

const classColumns = `id, teacher_id, name, description, year, semester, created_at`

func (s *Store) InsertClass(ctx context.Context, c *core.Class) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO classes (teacher_id, name, description, year, semester)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		c.TeacherID, c.Name, c.Description, c.Year, c.Semester,
	).Scan(&id)
	if err != nil {
		return 0, storageErr("insert class", err)
	}
	return id, nil
}

func (s *Store) GetClass(ctx context.Context, teacherID, classID int64) (*core.Class, error) {
	var c core.Class
	err := s.pool.QueryRow(ctx, `
		SELECT `+classColumns+`
		FROM classes
		WHERE id = $1 AND teacher_id = $2`,
		classID, teacherID,
	).Scan(&c.ID, &c.TeacherID, &c.Name, &c.Description, &c.Year, &c.Semester, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &core.NotFoundError{Entity: "class"}
		}
		return nil, storageErr("get class", err)
	}
	return &c, nil
}

func (s *Store) ListClasses(ctx context.Context, teacherID int64) ([]core.Class, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+classColumns+`
		FROM classes
		WHERE teacher_id = $1
		ORDER BY name, id`,
		teacherID,
	)
	if err != nil {
		return nil, storageErr("list classes", err)
	}
	defer rows.Close()

	var classes []core.Class
	for rows.Next() {
		var c core.Class
		if err := rows.Scan(&c.ID, &c.TeacherID, &c.Name, &c.Description, &c.Year, &c.Semester, &c.CreatedAt); err != nil {
			return nil, storageErr("scan class", err)
		}
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("rows error", err)
	}
	return classes, nil
}

func (s *Store) ListClassStudents(ctx context.Context, teacherID, classID int64) ([]core.Student, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT s.id, s.teacher_id, s.first_name, s.last_name, s.date_of_birth, s.gender,
			s.grade_level, s.attendance_pct, s.average_grade, s.behavioral_incidents,
			s.notes, s.created_at
		FROM students s
		JOIN student_classes sc ON sc.student_id = s.id
		WHERE sc.class_id = $1 AND s.teacher_id = $2
		ORDER BY s.last_name, s.first_name, s.id`,
		classID, teacherID,
	)
	if err != nil {
		return nil, storageErr("list class students", err)
	}
	defer rows.Close()

	return collectStudents(rows)
}

func (s *Store) DeleteEnrollment(ctx context.Context, classID, studentID int64) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM student_classes WHERE class_id = $1 AND student_id = $2`,
		classID, studentID,
	)
	if err != nil {
		return storageErr("delete enrollment", err)
	}
	if tag.RowsAffected() == 0 {
		return &core.NotFoundError{Entity: "enrollment"}
	}
	return nil
}

func (t *storeTx) AddEnrollment(ctx context.Context, classID, studentID int64) (bool, error) {
	tag, err := t.db.Exec(ctx, `
		INSERT INTO student_classes (student_id, class_id)
		VALUES ($1, $2)
		ON CONFLICT (student_id, class_id) DO NOTHING`,
		studentID, classID,
	)
	if err != nil {
		return false, storageErr("add enrollment", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (t *storeTx) DeleteEnrollmentsByClass(ctx context.Context, classID int64) (int64, error) {
	tag, err := t.db.Exec(ctx,
		`DELETE FROM student_classes WHERE class_id = $1`,
		classID,
	)
	if err != nil {
		return 0, storageErr("delete class enrollments", err)
	}
	return tag.RowsAffected(), nil
}

func (t *storeTx) DeleteClass(ctx context.Context, teacherID, classID int64) (bool, error) {
	tag, err := t.db.Exec(ctx,
		`DELETE FROM classes WHERE id = $1 AND teacher_id = $2`,
		classID, teacherID,
	)
	if err != nil {
		return false, storageErr("delete class", err)
	}
	return tag.RowsAffected() == 1, nil
}
