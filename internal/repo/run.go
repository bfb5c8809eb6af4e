package repo

import (
	"context"
	"errors"
	"sort"
	"sync"

	"huf_go/internal/model"
)

var ErrNotFound = errors.New("not found")

// RunRepo stores the history of compression runs.
type RunRepo interface {
	Save(ctx context.Context, r *model.Run) error
	FindByID(ctx context.Context, id string) (*model.Run, error)
	// List returns at most limit runs, newest first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]*model.Run, error)
}

type runRepoInMemory struct {
	mu    sync.RWMutex
	store map[string]*model.Run
}

func NewRunRepoInMemory() RunRepo {
	return &runRepoInMemory{store: make(map[string]*model.Run)}
}

func (r *runRepoInMemory) Save(_ context.Context, run *model.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *run
	r.store[run.ID] = &cp
	return nil
}

func (r *runRepoInMemory) FindByID(_ context.Context, id string) (*model.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *run
	return &cp, nil
}

func (r *runRepoInMemory) List(_ context.Context, limit int) ([]*model.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Run, 0, len(r.store))
	for _, run := range r.store {
		cp := *run
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
