package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sandeepkv93/tasklist/internal/model"
)

// Keys of the two persisted records.
const (
	KeyTasks      = "tasks"
	KeyCategories = "categories"
)

// Records encodes the task and category lists as JSON arrays under their keys.
type Records struct {
	kv KV
}

func NewRecords(kv KV) *Records {
	return &Records{kv: kv}
}

// LoadTasks returns found=false when the tasks key has never been written.
func (r *Records) LoadTasks(ctx context.Context) ([]model.Task, bool, error) {
	var out []model.Task
	found, err := r.load(ctx, KeyTasks, &out)
	if err != nil || !found {
		return nil, found, err
	}
	if out == nil {
		out = []model.Task{}
	}
	return out, true, nil
}

func (r *Records) SaveTasks(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return r.save(ctx, KeyTasks, tasks)
}

// LoadCategories returns found=false when the categories key has never been written.
func (r *Records) LoadCategories(ctx context.Context) ([]model.Category, bool, error) {
	var out []model.Category
	found, err := r.load(ctx, KeyCategories, &out)
	if err != nil || !found {
		return nil, found, err
	}
	if out == nil {
		out = []model.Category{}
	}
	return out, true, nil
}

func (r *Records) SaveCategories(ctx context.Context, categories []model.Category) error {
	if categories == nil {
		categories = []model.Category{}
	}
	return r.save(ctx, KeyCategories, categories)
}

func (r *Records) load(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := r.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("storage: read %s: %w", key, err)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("storage: decode %s: %w", key, err)
	}
	return true, nil
}

func (r *Records) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", key, err)
	}
	if err := r.kv.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	return nil
}
