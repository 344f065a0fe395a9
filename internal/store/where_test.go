package store

import (
	"reflect"
	"testing"

	"github.com/teacherspet/roster/internal/core"
)

func TestBuildStudentFilter_OwnerOnly(t *testing.T) {
	wb := buildStudentFilter(7, core.StudentFilter{})
	where, args := wb.clause()

	if where != " WHERE teacher_id = $1" {
		t.Errorf("where = %q", where)
	}
	if !reflect.DeepEqual(args, []any{int64(7)}) {
		t.Errorf("args = %v", args)
	}
	if wb.nextArgIndex() != 2 {
		t.Errorf("nextArgIndex = %d, want 2", wb.nextArgIndex())
	}
}

func TestBuildStudentFilter_Search(t *testing.T) {
	where, args := buildStudentFilter(7, core.StudentFilter{Search: "lov"}).clause()

	want := " WHERE teacher_id = $1 AND (first_name ILIKE $2 OR last_name ILIKE $3)"
	if where != want {
		t.Errorf("where = %q, want %q", where, want)
	}
	if !reflect.DeepEqual(args, []any{int64(7), "%lov%", "%lov%"}) {
		t.Errorf("args = %v", args)
	}
}

func TestBuildStudentFilter_Grade(t *testing.T) {
	grade := 7
	where, args := buildStudentFilter(7, core.StudentFilter{Grade: &grade}).clause()

	want := " WHERE teacher_id = $1 AND grade_level = $2"
	if where != want {
		t.Errorf("where = %q, want %q", where, want)
	}
	if !reflect.DeepEqual(args, []any{int64(7), 7}) {
		t.Errorf("args = %v", args)
	}
}

func TestBuildStudentFilter_AllFilters(t *testing.T) {
	grade := 9
	wb := buildStudentFilter(3, core.StudentFilter{Search: "a", Grade: &grade})
	where, args := wb.clause()

	want := " WHERE teacher_id = $1 AND (first_name ILIKE $2 OR last_name ILIKE $3) AND grade_level = $4"
	if where != want {
		t.Errorf("where = %q, want %q", where, want)
	}
	if len(args) != 4 {
		t.Errorf("args = %v, want 4", args)
	}

	// LIMIT/OFFSET placeholders continue where the filter left off.
	if wb.nextArgIndex() != 5 {
		t.Errorf("nextArgIndex = %d, want 5", wb.nextArgIndex())
	}
}

func TestWhereBuilder_Empty(t *testing.T) {
	wb := &whereBuilder{}
	clause, args := wb.clause()
	if clause != "" || args != nil {
		t.Errorf("empty builder = %q, %v", clause, args)
	}
	if wb.nextArgIndex() != 1 {
		t.Errorf("nextArgIndex = %d, want 1", wb.nextArgIndex())
	}
}

func TestWhereBuilder_NextArgIndex(t *testing.T) {
	wb := &whereBuilder{}
	wb.add("a = $%d", 1)
	wb.add("b = $%d AND c = $%d", 2, 3)
	if wb.nextArgIndex() != 4 {
		t.Errorf("nextArgIndex = %d, want 4", wb.nextArgIndex())
	}
}
