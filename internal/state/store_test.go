package state

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("task-%03d", n)
	}
}

func setupStore(t *testing.T) (*Store, *storage.Records) {
	t.Helper()
	kv, err := storage.OpenDiskv(filepath.Join(t.TempDir(), "store"))
	if err != nil {
		t.Fatalf("open diskv: %v", err)
	}
	records := storage.NewRecords(kv)
	s, err := Open(context.Background(), records, WithIDGenerator(sequentialIDs()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s, records
}

func assertPersisted(t *testing.T, s *Store, records *storage.Records) {
	t.Helper()
	persisted, found, err := records.LoadTasks(context.Background())
	if err != nil {
		t.Fatalf("load persisted tasks: %v", err)
	}
	if !found {
		t.Fatal("expected tasks record to be written")
	}
	if !reflect.DeepEqual(persisted, s.Tasks()) {
		t.Fatalf("persisted tasks diverge from memory:\n persisted %#v\n memory    %#v", persisted, s.Tasks())
	}
}

type failingPersister struct {
	failTasks      bool
	failCategories bool
	tasks          []model.Task
	categories     []model.Category
}

func (f *failingPersister) LoadTasks(context.Context) ([]model.Task, bool, error) {
	return nil, false, nil
}

func (f *failingPersister) SaveTasks(_ context.Context, tasks []model.Task) error {
	if f.failTasks {
		return errors.New("quota exceeded")
	}
	f.tasks = tasks
	return nil
}

func (f *failingPersister) LoadCategories(context.Context) ([]model.Category, bool, error) {
	return nil, false, nil
}

func (f *failingPersister) SaveCategories(_ context.Context, categories []model.Category) error {
	if f.failCategories {
		return errors.New("quota exceeded")
	}
	f.categories = categories
	return nil
}

func TestOpenSeedsDefaults(t *testing.T) {
	s, _ := setupStore(t)
	if len(s.Tasks()) != 0 {
		t.Fatalf("expected no tasks, got %d", len(s.Tasks()))
	}
	if !reflect.DeepEqual(s.Categories(), model.DefaultCategories()) {
		t.Fatalf("unexpected default categories: %#v", s.Categories())
	}
}

func TestAddTaskWithAllSelectedFallsBackToPersonal(t *testing.T) {
	s, records := setupStore(t)
	ctx := context.Background()

	task, err := s.AddTask(ctx, "Buy milk", model.AllCategories)
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	want := model.Task{ID: "task-001", Text: "Buy milk", Completed: false, Category: "personal"}
	if task != want {
		t.Fatalf("unexpected task: %#v", task)
	}
	if st := s.Stats(); st.Total != 1 || st.Completed != 0 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	assertPersisted(t, s, records)
}

func TestAddTaskUsesSelectedCategoryAndTrims(t *testing.T) {
	s, _ := setupStore(t)
	task, err := s.AddTask(context.Background(), "  Standup  ", "work")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if task.Text != "Standup" || task.Category != "work" {
		t.Fatalf("unexpected task: %#v", task)
	}
}

func TestAddTaskRejectsUnknownCategory(t *testing.T) {
	s, records := setupStore(t)
	_, err := s.AddTask(context.Background(), "orphan", "nosuch")
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got: %v", err)
	}
	if len(s.Tasks()) != 0 {
		t.Fatalf("unknown category added a task: %+v", s.Tasks())
	}
	if _, found, _ := records.LoadTasks(context.Background()); found {
		t.Fatal("rejected add should not write the tasks record")
	}
}

func TestAddBlankTaskLeavesListUnchanged(t *testing.T) {
	s, records := setupStore(t)
	ctx := context.Background()
	if _, err := s.AddTask(ctx, "keep", "work"); err != nil {
		t.Fatalf("add: %v", err)
	}
	before := s.Tasks()

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := s.AddTask(ctx, text, "work"); !errors.Is(err, ErrBlankText) {
			t.Fatalf("expected ErrBlankText for %q, got: %v", text, err)
		}
	}
	if !reflect.DeepEqual(before, s.Tasks()) {
		t.Fatalf("blank add changed tasks: %#v", s.Tasks())
	}
	assertPersisted(t, s, records)
}

func TestToggleTwiceRestoresState(t *testing.T) {
	s, records := setupStore(t)
	ctx := context.Background()
	task, _ := s.AddTask(ctx, "Stretch", "health")

	toggled, err := s.ToggleTask(ctx, task.ID)
	if err != nil || !toggled.Completed {
		t.Fatalf("first toggle: %#v %v", toggled, err)
	}
	assertPersisted(t, s, records)

	toggled, err = s.ToggleTask(ctx, task.ID)
	if err != nil || toggled.Completed {
		t.Fatalf("second toggle: %#v %v", toggled, err)
	}
	assertPersisted(t, s, records)
}

func TestEditTask(t *testing.T) {
	s, records := setupStore(t)
	ctx := context.Background()
	task, _ := s.AddTask(ctx, "Draft", "work")

	edited, err := s.EditTask(ctx, task.ID, "  Final draft ")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Text != "Final draft" || edited.Category != "work" {
		t.Fatalf("unexpected edit result: %#v", edited)
	}
	assertPersisted(t, s, records)

	if _, err := s.EditTask(ctx, task.ID, "   "); !errors.Is(err, ErrBlankText) {
		t.Fatalf("expected ErrBlankText, got: %v", err)
	}
	got, _ := s.Task(task.ID)
	if got.Text != "Final draft" {
		t.Fatalf("blank edit must not change text, got %q", got.Text)
	}

	if _, err := s.EditTask(ctx, "nope", "x"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got: %v", err)
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	s, records := setupStore(t)
	ctx := context.Background()
	a, _ := s.AddTask(ctx, "a", "work")
	b, _ := s.AddTask(ctx, "b", "health")
	c, _ := s.AddTask(ctx, "c", model.AllCategories)
	if _, err := s.ToggleTask(ctx, c.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	c, _ = s.Task(c.ID)

	removed, err := s.DeleteTask(ctx, b.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed != b {
		t.Fatalf("unexpected removed task: %#v", removed)
	}
	want := []model.Task{a, c}
	if !reflect.DeepEqual(s.Tasks(), want) {
		t.Fatalf("unexpected remaining tasks: %#v", s.Tasks())
	}
	if s.Stats().Total != 2 {
		t.Fatalf("expected total 2, got %d", s.Stats().Total)
	}
	assertPersisted(t, s, records)

	if _, err := s.DeleteTask(ctx, b.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got: %v", err)
	}
}

func TestClearCompletedKeepsUncompleted(t *testing.T) {
	s, records := setupStore(t)
	ctx := context.Background()
	keep, _ := s.AddTask(ctx, "keep", model.AllCategories)
	done, _ := s.AddTask(ctx, "done", model.AllCategories)
	if _, err := s.ToggleTask(ctx, done.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	removed, err := s.ClearCompleted(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if got := s.Tasks(); len(got) != 1 || got[0] != keep {
		t.Fatalf("unexpected remaining tasks: %#v", got)
	}
	assertPersisted(t, s, records)
}

func TestAddCategoryNormalizesAndRejectsDuplicates(t *testing.T) {
	s, records := setupStore(t)
	ctx := context.Background()

	cat, err := s.AddCategory(ctx, "  Errands ", "shopping-cart")
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	if cat.Name != "errands" {
		t.Fatalf("expected lowercase name, got %q", cat.Name)
	}
	persisted, found, err := records.LoadCategories(ctx)
	if err != nil || !found || len(persisted) != 4 {
		t.Fatalf("unexpected persisted categories: %#v found=%v err=%v", persisted, found, err)
	}

	before := s.Categories()
	for _, name := range []string{"Work", "ERRANDS", " work ", "All"} {
		if _, err := s.AddCategory(ctx, name, "book"); !errors.Is(err, ErrDuplicateCategory) {
			t.Fatalf("expected ErrDuplicateCategory for %q, got: %v", name, err)
		}
	}
	if _, err := s.AddCategory(ctx, "   ", "book"); !errors.Is(err, ErrBlankCategoryName) {
		t.Fatalf("expected ErrBlankCategoryName, got: %v", err)
	}
	if _, err := s.AddCategory(ctx, "garden", "rocket"); !errors.Is(err, ErrUnknownIcon) {
		t.Fatalf("expected ErrUnknownIcon, got: %v", err)
	}
	if !reflect.DeepEqual(before, s.Categories()) {
		t.Fatalf("rejected adds changed categories: %#v", s.Categories())
	}
}

func TestVisibleComposesCategoryAndStatus(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	w1, _ := s.AddTask(ctx, "w1", "work")
	w2, _ := s.AddTask(ctx, "w2", "work")
	h1, _ := s.AddTask(ctx, "h1", "health")
	s.ToggleTask(ctx, w2.ID)
	s.ToggleTask(ctx, h1.ID)
	w2, _ = s.Task(w2.ID)
	h1, _ = s.Task(h1.ID)

	got := s.Visible(model.ViewFilter{Category: "work", Status: model.FilterCompleted})
	if !reflect.DeepEqual(got, []model.Task{w2}) {
		t.Fatalf("work/completed = %#v", got)
	}
	got = s.Visible(model.ViewFilter{Category: "work", Status: model.FilterActive})
	if !reflect.DeepEqual(got, []model.Task{w1}) {
		t.Fatalf("work/active = %#v", got)
	}
	got = s.Visible(model.ViewFilter{Category: model.AllCategories, Status: model.FilterAll})
	if !reflect.DeepEqual(got, []model.Task{w1, w2, h1}) {
		t.Fatalf("all/all = %#v", got)
	}
	if got := s.Visible(model.ViewFilter{Category: "personal", Status: model.FilterAll}); len(got) != 0 {
		t.Fatalf("expected nothing in personal, got %#v", got)
	}
}

func TestLookupByPrefix(t *testing.T) {
	ids := []string{"abc123", "abd456"}
	next := 0
	s, err := Open(context.Background(), &failingPersister{}, WithIDGenerator(func() string {
		id := ids[next]
		next++
		return id
	}))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	a, _ := s.AddTask(ctx, "a", "work")
	s.AddTask(ctx, "b", "work")

	got, err := s.Lookup(a.ID)
	if err != nil || got != a {
		t.Fatalf("full id lookup: %#v %v", got, err)
	}
	got, err = s.Lookup("abc")
	if err != nil || got.ID != a.ID {
		t.Fatalf("prefix lookup: %#v %v", got, err)
	}
	if _, err := s.Lookup("ab"); !errors.Is(err, ErrAmbiguousID) {
		t.Fatalf("expected ErrAmbiguousID, got: %v", err)
	}
	if _, err := s.Lookup("zzz"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got: %v", err)
	}
}

func TestOpenAssignsIDsToLegacyTasks(t *testing.T) {
	kv, err := storage.OpenDiskv(filepath.Join(t.TempDir(), "legacy"))
	if err != nil {
		t.Fatalf("open diskv: %v", err)
	}
	ctx := context.Background()
	legacy := `[{"text":"old","completed":false,"category":"work"}]`
	if err := kv.Put(ctx, storage.KeyTasks, []byte(legacy)); err != nil {
		t.Fatalf("put: %v", err)
	}
	s, err := Open(ctx, storage.NewRecords(kv), WithIDGenerator(sequentialIDs()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "task-001" || tasks[0].Text != "old" {
		t.Fatalf("unexpected legacy tasks: %#v", tasks)
	}
}

func TestPersistFailureKeepsMutationAndReportsError(t *testing.T) {
	p := &failingPersister{failTasks: true}
	var logs bytes.Buffer
	s, err := Open(context.Background(), p, WithLogger(log.New(&logs, "", 0)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	task, err := s.AddTask(context.Background(), "Buy milk", model.AllCategories)
	if err == nil || !strings.Contains(err.Error(), "save tasks") {
		t.Fatalf("expected save error, got: %v", err)
	}
	if _, ok := s.Task(task.ID); !ok {
		t.Fatal("expected in-memory task to remain after failed write")
	}
	if !strings.Contains(logs.String(), "persist tasks failed") {
		t.Fatalf("expected failure to be logged, got %q", logs.String())
	}
}

func TestStatsRatio(t *testing.T) {
	if r := (Stats{}).Ratio(); r != 0 {
		t.Fatalf("expected 0 ratio for empty stats, got %v", r)
	}
	if r := (Stats{Total: 4, Completed: 1}).Ratio(); r != 0.25 {
		t.Fatalf("expected 0.25, got %v", r)
	}
}

func TestOpenLogsInvalidLoadedRecords(t *testing.T) {
	kv, err := storage.OpenDiskv(filepath.Join(t.TempDir(), "odd"))
	if err != nil {
		t.Fatalf("open diskv: %v", err)
	}
	ctx := context.Background()
	if err := kv.Put(ctx, storage.KeyCategories, []byte(`[{"name":"garden","icon":"shovel"}]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	var logs bytes.Buffer
	s, err := Open(ctx, storage.NewRecords(kv), WithLogger(log.New(&logs, "", 0)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	cats := s.Categories()
	if len(cats) != 1 || cats[0].Glyph() != "•" {
		t.Fatalf("expected loaded category with fallback glyph, got %#v", cats)
	}
	if !strings.Contains(logs.String(), `loaded category "garden"`) {
		t.Fatalf("expected validation warning, got %q", logs.String())
	}
}
