package store

import (
	"fmt"
	"strings"
)

// whereBuilder accumulates WHERE conditions with positional
// placeholders, renumbering them as arguments are added.
type whereBuilder struct {
	conds []string
	args  []any
}

// add appends a condition. The condition text uses $N placeholders
// starting at the builder's next free index; pass args in matching
// order. Placeholder text in cond must be written as %d verbs.
func (b *whereBuilder) add(cond string, args ...any) {
	idxs := make([]any, len(args))
	for i := range args {
		idxs[i] = len(b.args) + i + 1
	}
	b.conds = append(b.conds, fmt.Sprintf(cond, idxs...))
	b.args = append(b.args, args...)
}

// clause returns the assembled WHERE clause (with leading space) and
// its arguments. An empty builder yields an empty clause.
func (b *whereBuilder) clause() (string, []any) {
	if len(b.conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(b.conds, " AND "), b.args
}

// nextArgIndex is the placeholder index for the next argument, used
// when appending LIMIT/OFFSET after the WHERE clause.
func (b *whereBuilder) nextArgIndex() int {
	return len(b.args) + 1
}
