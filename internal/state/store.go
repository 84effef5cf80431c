// Package state owns the in-memory task and category lists and writes every
// mutation through to the persister before returning.
package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/sandeepkv93/tasklist/internal/model"
)

var (
	ErrBlankText         = errors.New("state: task text is blank")
	ErrBlankCategoryName = errors.New("state: category name is blank")
	ErrDuplicateCategory = errors.New("state: category already exists")
	ErrUnknownIcon       = errors.New("state: unknown icon")
	ErrUnknownCategory   = errors.New("state: unknown category")
	ErrTaskNotFound      = errors.New("state: task not found")
	ErrAmbiguousID       = errors.New("state: ambiguous task id")
)

// Persister is the durable side of the store. Load methods report found=false
// when the record has never been written.
type Persister interface {
	LoadTasks(ctx context.Context) ([]model.Task, bool, error)
	SaveTasks(ctx context.Context, tasks []model.Task) error
	LoadCategories(ctx context.Context) ([]model.Category, bool, error)
	SaveCategories(ctx context.Context, categories []model.Category) error
}

type Stats struct {
	Total     int
	Completed int
}

// Ratio is the completed share of all tasks, 0 when there are none.
func (s Stats) Ratio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}

type Store struct {
	persister  Persister
	logger     *log.Logger
	newID      func() string
	tasks      []model.Task
	categories []model.Category
}

type Option func(*Store)

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator replaces the UUID generator, mainly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Open loads both records. Missing tasks start empty and missing categories
// start with the seeded defaults.
func Open(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	if p == nil {
		return nil, errors.New("state: nil persister")
	}
	s := &Store{
		persister: p,
		logger:    log.New(io.Discard, "", 0),
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}

	tasks, found, err := p.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("state: load tasks: %w", err)
	}
	if !found {
		tasks = []model.Task{}
	}
	for i := range tasks {
		if strings.TrimSpace(tasks[i].ID) == "" {
			tasks[i].ID = s.newID()
		}
		if err := tasks[i].Validate(); err != nil {
			s.logger.Printf("state: loaded task %s: %v", tasks[i].ID, err)
		}
	}
	s.tasks = tasks

	categories, found, err := p.LoadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("state: load categories: %w", err)
	}
	if !found {
		categories = model.DefaultCategories()
	}
	for _, c := range categories {
		if err := c.Validate(); err != nil {
			s.logger.Printf("state: loaded category %q: %v", c.Name, err)
		}
	}
	s.categories = categories

	s.logger.Printf("state: loaded %d tasks, %d categories", len(s.tasks), len(s.categories))
	return s, nil
}

// Tasks returns a copy of the full task list in order.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Categories() []model.Category {
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *Store) Task(id string) (model.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// Lookup resolves a full id or a unique id prefix.
func (s *Store) Lookup(idOrPrefix string) (model.Task, error) {
	needle := strings.TrimSpace(idOrPrefix)
	if needle == "" {
		return model.Task{}, ErrTaskNotFound
	}
	if t, ok := s.Task(needle); ok {
		return t, nil
	}
	var match *model.Task
	for i := range s.tasks {
		if !strings.HasPrefix(s.tasks[i].ID, needle) {
			continue
		}
		if match != nil {
			return model.Task{}, fmt.Errorf("%w: %q", ErrAmbiguousID, needle)
		}
		match = &s.tasks[i]
	}
	if match == nil {
		return model.Task{}, fmt.Errorf("%w: %q", ErrTaskNotFound, needle)
	}
	return *match, nil
}

func (s *Store) Category(name string) (model.Category, bool) {
	for _, c := range s.categories {
		if c.Name == name {
			return c, true
		}
	}
	return model.Category{}, false
}

// Visible applies the category filter, then the status filter, keeping list order.
func (s *Store) Visible(f model.ViewFilter) []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Stats counts over the unfiltered list.
func (s *Store) Stats() Stats {
	st := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
		}
	}
	return st
}

// AddTask appends a task to selectedCategory, or to the default category when
// the "all" pseudo-category is selected. Any other name must be a known
// category.
func (s *Store) AddTask(ctx context.Context, text, selectedCategory string) (model.Task, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return model.Task{}, ErrBlankText
	}
	category := strings.TrimSpace(selectedCategory)
	if category == "" || category == model.AllCategories {
		category = model.DefaultCategory
	} else if _, ok := s.Category(category); !ok {
		return model.Task{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	task := model.Task{
		ID:        s.newID(),
		Text:      trimmed,
		Completed: false,
		Category:  category,
	}
	s.tasks = append(s.tasks, task)
	return task, s.saveTasks(ctx)
}

func (s *Store) ToggleTask(ctx context.Context, id string) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.tasks[i], s.saveTasks(ctx)
}

func (s *Store) EditTask(ctx context.Context, id, text string) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return s.tasks[i], ErrBlankText
	}
	s.tasks[i].Text = trimmed
	return s.tasks[i], s.saveTasks(ctx)
}

func (s *Store) DeleteTask(ctx context.Context, id string) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	return removed, s.saveTasks(ctx)
}

// ClearCompleted removes every completed task and returns how many were removed.
func (s *Store) ClearCompleted(ctx context.Context) (int, error) {
	kept := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	s.tasks = kept
	return removed, s.saveTasks(ctx)
}

// AddCategory lower-cases and trims name before the uniqueness check.
func (s *Store) AddCategory(ctx context.Context, name, icon string) (model.Category, error) {
	normalized := model.NormalizeCategoryName(name)
	if normalized == "" {
		return model.Category{}, ErrBlankCategoryName
	}
	if normalized == model.AllCategories {
		return model.Category{}, fmt.Errorf("%w: %q", ErrDuplicateCategory, normalized)
	}
	if _, exists := s.Category(normalized); exists {
		return model.Category{}, fmt.Errorf("%w: %q", ErrDuplicateCategory, normalized)
	}
	if !model.IsKnownIcon(icon) {
		return model.Category{}, fmt.Errorf("%w: %q", ErrUnknownIcon, icon)
	}
	category := model.Category{Name: normalized, Icon: icon}
	s.categories = append(s.categories, category)
	return category, s.saveCategories(ctx)
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) saveTasks(ctx context.Context) error {
	if err := s.persister.SaveTasks(ctx, s.Tasks()); err != nil {
		s.logger.Printf("state: persist tasks failed: %v", err)
		return fmt.Errorf("state: save tasks: %w", err)
	}
	return nil
}

func (s *Store) saveCategories(ctx context.Context) error {
	if err := s.persister.SaveCategories(ctx, s.Categories()); err != nil {
		s.logger.Printf("state: persist categories failed: %v", err)
		return fmt.Errorf("state: save categories: %w", err)
	}
	return nil
}
