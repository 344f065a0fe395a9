package core

import (
	"context"
	"testing"
)

func seedStudents(t *testing.T, g *memGateway, teacherID int64, specs []struct {
	first, last string
	grade       int
}) {
	t.Helper()
	for _, sp := range specs {
		grade := sp.grade
		s := &Student{TeacherID: teacherID, FirstName: sp.first, LastName: sp.last}
		if grade > 0 {
			s.GradeLevel = &grade
		}
		if _, err := g.InsertStudent(context.Background(), s); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func seedRoster(t *testing.T, g *memGateway) {
	t.Helper()
	seedStudents(t, g, 1, []struct {
		first, last string
		grade       int
	}{
		{"Ada", "Lovelace", 7},
		{"Alan", "Turing", 6},
		{"Grace", "Hopper", 7},
		{"Edsger", "Dijkstra", 8},
		{"Barbara", "Liskov", 7},
	})
	// Another teacher's student must never appear.
	seedStudents(t, g, 2, []struct {
		first, last string
		grade       int
	}{
		{"Donald", "Knuth", 7},
	})
}

func TestListStudents_OwnerScoped(t *testing.T) {
	g := newMemGateway()
	seedRoster(t, g)
	svc := NewService(g)

	page, err := svc.ListStudents(context.Background(), 1, StudentFilter{})
	if err != nil {
		t.Fatalf("ListStudents() error = %v", err)
	}

	if page.TotalItems != 5 {
		t.Errorf("totalItems = %d, want 5", page.TotalItems)
	}
	for _, s := range page.Items {
		if s.LastName == "Knuth" {
			t.Error("another teacher's student leaked into the listing")
		}
	}
}

func TestListStudents_Ordering(t *testing.T) {
	g := newMemGateway()
	seedRoster(t, g)
	svc := NewService(g)

	page, err := svc.ListStudents(context.Background(), 1, StudentFilter{})
	if err != nil {
		t.Fatalf("ListStudents() error = %v", err)
	}

	want := []string{"Dijkstra", "Hopper", "Liskov", "Lovelace", "Turing"}
	for i, s := range page.Items {
		if s.LastName != want[i] {
			t.Errorf("items[%d].LastName = %q, want %q", i, s.LastName, want[i])
		}
	}
}

func TestListStudents_SearchCaseInsensitive(t *testing.T) {
	g := newMemGateway()
	seedRoster(t, g)
	svc := NewService(g)

	page, err := svc.ListStudents(context.Background(), 1, StudentFilter{Search: "LOVE"})
	if err != nil {
		t.Fatalf("ListStudents() error = %v", err)
	}
	if page.TotalItems != 1 || page.Items[0].LastName != "Lovelace" {
		t.Errorf("search results = %+v", page.Items)
	}

	// Substring of a first name matches too.
	page, err = svc.ListStudents(context.Background(), 1, StudentFilter{Search: "race"})
	if err != nil {
		t.Fatalf("ListStudents() error = %v", err)
	}
	if page.TotalItems != 1 || page.Items[0].FirstName != "Grace" {
		t.Errorf("search results = %+v", page.Items)
	}
}

func TestListStudents_GradeFilter(t *testing.T) {
	g := newMemGateway()
	seedRoster(t, g)
	svc := NewService(g)

	grade := 7
	page, err := svc.ListStudents(context.Background(), 1, StudentFilter{Grade: &grade})
	if err != nil {
		t.Fatalf("ListStudents() error = %v", err)
	}
	if page.TotalItems != 3 {
		t.Errorf("totalItems = %d, want 3", page.TotalItems)
	}
}

func TestListStudents_Pagination(t *testing.T) {
	g := newMemGateway()
	seedRoster(t, g)
	svc := NewService(g)

	page, err := svc.ListStudents(context.Background(), 1, StudentFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("ListStudents() error = %v", err)
	}

	if page.Page != 2 {
		t.Errorf("page = %d, want 2", page.Page)
	}
	if page.TotalPages != 3 {
		t.Errorf("totalPages = %d, want 3 (ceil(5/2))", page.TotalPages)
	}
	if len(page.Items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(page.Items))
	}
	if page.Items[0].LastName != "Liskov" || page.Items[1].LastName != "Lovelace" {
		t.Errorf("page 2 = %q, %q", page.Items[0].LastName, page.Items[1].LastName)
	}
}

func TestListStudents_PageClampedToOne(t *testing.T) {
	g := newMemGateway()
	seedRoster(t, g)
	svc := NewService(g)

	page, err := svc.ListStudents(context.Background(), 1, StudentFilter{Page: -3, PageSize: 2})
	if err != nil {
		t.Fatalf("ListStudents() error = %v", err)
	}
	if page.Page != 1 {
		t.Errorf("page = %d, want 1", page.Page)
	}
	if page.Items[0].LastName != "Dijkstra" {
		t.Errorf("items[0] = %q, want Dijkstra", page.Items[0].LastName)
	}
}

func TestListStudents_DefaultPageSize(t *testing.T) {
	g := newMemGateway()
	seedRoster(t, g)
	svc := NewService(g)

	page, err := svc.ListStudents(context.Background(), 1, StudentFilter{PageSize: -1})
	if err != nil {
		t.Fatalf("ListStudents() error = %v", err)
	}
	if page.TotalPages != 1 {
		t.Errorf("totalPages = %d, want 1 (default page size %d)", page.TotalPages, DefaultPageSize)
	}
}

func TestListStudents_OutOfRangePageIsEmpty(t *testing.T) {
	g := newMemGateway()
	seedRoster(t, g)
	svc := NewService(g)

	page, err := svc.ListStudents(context.Background(), 1, StudentFilter{Page: 99, PageSize: 2})
	if err != nil {
		t.Fatalf("ListStudents() error = %v", err)
	}

	if len(page.Items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(page.Items))
	}
	if page.TotalItems != 5 || page.TotalPages != 3 {
		t.Errorf("counts = %d/%d, want 5/3", page.TotalItems, page.TotalPages)
	}
	if page.Page != 99 {
		t.Errorf("page = %d, want 99 (echoed back)", page.Page)
	}
}

func TestListStudents_EmptyRoster(t *testing.T) {
	svc := NewService(newMemGateway())

	page, err := svc.ListStudents(context.Background(), 1, StudentFilter{})
	if err != nil {
		t.Fatalf("ListStudents() error = %v", err)
	}
	if page.TotalItems != 0 || page.TotalPages != 0 || len(page.Items) != 0 {
		t.Errorf("empty roster page = %+v", page)
	}
	if page.Items == nil {
		t.Error("items should be an empty slice, not nil")
	}
}
