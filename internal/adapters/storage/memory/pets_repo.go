package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"virtual-pet/internal/domain/pets"
)

// petRepo guarda las mascotas en un map. Un único mutex serializa
// todas las mutaciones, así Mutate/MutateAll son atómicos.
type petRepo struct {
	mu     sync.RWMutex
	byID   map[int64]pets.Pet
	nextID int64
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID:   make(map[int64]pets.Pet),
		nextID: 1,
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID != 0 {
		return pets.Pet{}, errors.New("pet id is assigned by the store")
	}
	p.ID = r.nextID
	r.nextID++
	r.byID[p.ID] = p
	return p, nil
}

func (r *petRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedLocked(), nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return pets.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID), nil
}

func (r *petRepo) Mutate(ctx context.Context, id int64, fn pets.MutateFunc) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	if err := fn(&p); err != nil {
		return pets.Pet{}, err
	}
	if p.ID != id {
		return pets.Pet{}, fmt.Errorf("pet id is immutable (%d -> %d)", id, p.ID)
	}
	r.byID[id] = p
	return p, nil
}

func (r *petRepo) MutateAll(ctx context.Context, fn func(p *pets.Pet)) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.byID {
		fn(&p)
		p.ID = id
		r.byID[id] = p
	}
	return len(r.byID), nil
}

// Orden por id asc (igual que Postgres)
func (r *petRepo) sortedLocked() []pets.Pet {
	out := make([]pets.Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}
