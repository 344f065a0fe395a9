package core

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

// memGateway is an in-memory Gateway for tests.
type memGateway struct {
	mu          sync.Mutex
	nextID      int64
	students    map[int64]*Student
	classes     map[int64]*Class
	enrollments map[[2]int64]bool // [classID, studentID]

	// insertStudentErr, when set, fails InsertStudent after
	// failAfter successful inserts.
	insertStudentErr error
	failAfter        int
	inserted         int
}

func newMemGateway() *memGateway {
	return &memGateway{
		students:    make(map[int64]*Student),
		classes:     make(map[int64]*Class),
		enrollments: make(map[[2]int64]bool),
	}
}

func (m *memGateway) InsertStudent(_ context.Context, s *Student) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertStudentErr != nil && m.inserted >= m.failAfter {
		return 0, m.insertStudentErr
	}
	m.nextID++
	cp := *s
	cp.ID = m.nextID
	m.students[cp.ID] = &cp
	m.inserted++
	return cp.ID, nil
}

func (m *memGateway) GetStudent(_ context.Context, teacherID, studentID int64) (*Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[studentID]
	if !ok || s.TeacherID != teacherID {
		return nil, &NotFoundError{Entity: "student"}
	}
	cp := *s
	return &cp, nil
}

func (m *memGateway) UpdateStudent(_ context.Context, s *Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.students[s.ID]
	if !ok || existing.TeacherID != s.TeacherID {
		return &NotFoundError{Entity: "student"}
	}
	cp := *s
	m.students[s.ID] = &cp
	return nil
}

func (m *memGateway) DeleteStudent(_ context.Context, teacherID, studentID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[studentID]
	if !ok || s.TeacherID != teacherID {
		return &NotFoundError{Entity: "student"}
	}
	delete(m.students, studentID)
	for pair := range m.enrollments {
		if pair[1] == studentID {
			delete(m.enrollments, pair)
		}
	}
	return nil
}

func (m *memGateway) ListStudents(_ context.Context, teacherID int64, f StudentFilter) ([]Student, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []Student
	for _, s := range m.students {
		if s.TeacherID != teacherID {
			continue
		}
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(s.FirstName), needle) &&
				!strings.Contains(strings.ToLower(s.LastName), needle) {
				continue
			}
		}
		if f.Grade != nil {
			if s.GradeLevel == nil || *s.GradeLevel != *f.Grade {
				continue
			}
		}
		matched = append(matched, *s)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.ID < b.ID
	})

	total := len(matched)
	start := (f.Page - 1) * f.PageSize
	if start >= total {
		return []Student{}, total, nil
	}
	end := start + f.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (m *memGateway) CountOwnedStudents(_ context.Context, teacherID int64, studentIDs []int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[int64]struct{})
	count := 0
	for _, id := range studentIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if s, ok := m.students[id]; ok && s.TeacherID == teacherID {
			count++
		}
	}
	return count, nil
}

func (m *memGateway) InsertClass(_ context.Context, c *Class) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	cp := *c
	cp.ID = m.nextID
	m.classes[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memGateway) GetClass(_ context.Context, teacherID, classID int64) (*Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.classes[classID]
	if !ok || c.TeacherID != teacherID {
		return nil, &NotFoundError{Entity: "class"}
	}
	cp := *c
	return &cp, nil
}

func (m *memGateway) ListClasses(_ context.Context, teacherID int64) ([]Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Class
	for _, c := range m.classes {
		if c.TeacherID == teacherID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memGateway) ListClassStudents(_ context.Context, teacherID, classID int64) ([]Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Student
	for pair, ok := range m.enrollments {
		if !ok || pair[0] != classID {
			continue
		}
		if s, exists := m.students[pair[1]]; exists && s.TeacherID == teacherID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (m *memGateway) DeleteEnrollment(_ context.Context, classID, studentID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pair := [2]int64{classID, studentID}
	if !m.enrollments[pair] {
		return &NotFoundError{Entity: "enrollment"}
	}
	delete(m.enrollments, pair)
	return nil
}

// memTx stages mutations and applies them on commit, so a rolled-back
// transaction leaves the gateway untouched.
type memTx struct {
	g          *memGateway
	adds       [][2]int64
	delByClass []int64
	delClasses []int64
}

func (m *memGateway) InTx(_ context.Context, fn func(tx Tx) error) error {
	tx := &memTx{g: m}
	if err := fn(tx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, classID := range tx.delByClass {
		for pair := range m.enrollments {
			if pair[0] == classID {
				delete(m.enrollments, pair)
			}
		}
	}
	for _, classID := range tx.delClasses {
		delete(m.classes, classID)
	}
	for _, pair := range tx.adds {
		m.enrollments[pair] = true
	}
	return nil
}

func (t *memTx) AddEnrollment(_ context.Context, classID, studentID int64) (bool, error) {
	pair := [2]int64{classID, studentID}
	t.g.mu.Lock()
	exists := t.g.enrollments[pair]
	t.g.mu.Unlock()
	if exists {
		return false, nil
	}
	for _, staged := range t.adds {
		if staged == pair {
			return false, nil
		}
	}
	t.adds = append(t.adds, pair)
	return true, nil
}

func (t *memTx) DeleteEnrollmentsByClass(_ context.Context, classID int64) (int64, error) {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	var n int64
	for pair := range t.g.enrollments {
		if pair[0] == classID {
			n++
		}
	}
	t.delByClass = append(t.delByClass, classID)
	return n, nil
}

func (t *memTx) DeleteClass(_ context.Context, teacherID, classID int64) (bool, error) {
	t.g.mu.Lock()
	c, ok := t.g.classes[classID]
	t.g.mu.Unlock()
	if !ok || c.TeacherID != teacherID {
		return false, nil
	}
	t.delClasses = append(t.delClasses, classID)
	return true, nil
}

var errStorageDown = errors.New("storage unavailable")
