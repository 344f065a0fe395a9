package core

import "context"

// ListStudents returns one page of the teacher's students matching
// the filter.
//
// Search matches a case-insensitive substring of the first or last
// name. Results are ordered by last name, then first name, then ID so
// pagination is stable. A page beyond the last one returns an empty
// item list with the counts intact.
func (s *Service) ListStudents(ctx context.Context, teacherID int64, f StudentFilter) (*StudentPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}

	items, total, err := s.gateway.ListStudents(ctx, teacherID, f)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Student{}
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + f.PageSize - 1) / f.PageSize
	}

	return &StudentPage{
		Items:      items,
		TotalItems: total,
		TotalPages: totalPages,
		Page:       f.Page,
	}, nil
}
