package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var ErrInvalidFilter = errors.New("model: invalid status filter")

const (
	// AllCategories is the sentinel selection that disables the category filter.
	AllCategories = "all"
	// DefaultCategory receives tasks created while AllCategories is selected.
	DefaultCategory = "personal"
)

type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
)

func (f StatusFilter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

// Keep reports whether a task with the given completion flag passes the filter.
func (f StatusFilter) Keep(completed bool) bool {
	switch f {
	case FilterActive:
		return !completed
	case FilterCompleted:
		return completed
	default:
		return true
	}
}

// Next cycles all -> active -> completed -> all.
func (f StatusFilter) Next() StatusFilter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

func ParseStatusFilter(raw string) (StatusFilter, error) {
	f := StatusFilter(strings.ToLower(strings.TrimSpace(raw)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return f, nil
}

func StatusFilters() []StatusFilter {
	return []StatusFilter{FilterAll, FilterActive, FilterCompleted}
}

type Task struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Category  string `json:"category"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if strings.TrimSpace(t.Category) == "" {
		return errors.New("model: task category is required")
	}
	return nil
}

// ViewFilter is the transient selection that decides which tasks are shown.
type ViewFilter struct {
	Category string
	Status   StatusFilter
}

func (v ViewFilter) Match(t Task) bool {
	if v.Category != "" && v.Category != AllCategories && t.Category != v.Category {
		return false
	}
	return v.Status.Keep(t.Completed)
}

// TitleCase upper-cases the first letter only: "shopping list" -> "Shopping list".
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
