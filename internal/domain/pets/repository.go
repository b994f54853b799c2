package pets

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("pet not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidAction = errors.New("invalid action")
	ErrInvalidAmount = errors.New("invalid amount")
)

// MutateFunc modifica la mascota en sitio. Si devuelve error no se persiste nada.
type MutateFunc func(p *Pet) error

// Repository es el puerto de persistencia.
// Mutate y MutateAll deben ser atómicos por registro (lock o transacción):
// el core no serializa acciones y decay concurrentes sobre la misma mascota.
type Repository interface {
	Create(ctx context.Context, p Pet) (Pet, error) // asigna ID
	GetByID(ctx context.Context, id int64) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
	Update(ctx context.Context, p Pet) error
	Count(ctx context.Context) (int, error)

	Mutate(ctx context.Context, id int64, fn MutateFunc) (Pet, error)
	MutateAll(ctx context.Context, fn func(p *Pet)) (int, error)
}
