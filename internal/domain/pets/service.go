package pets

import (
	"context"
	"fmt"
	"time"

	"virtual-pet/internal/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	repo  Repository
	rules Rules
	log   logger.Logger
	now   func() time.Time
}

func NewService(repo Repository, rules Rules, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:  repo,
		rules: rules,
		log:   log.With(map[string]any{"component": "pets"}),
		now:   time.Now,
	}
}

// Bootstrap se llama una vez al arrancar, antes de servir tráfico.
// Si no hay mascotas crea una con stats por defecto.
func (s *Service) Bootstrap(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count pets: %w", err)
	}
	if n > 0 {
		s.log.Debug("bootstrap: pets already present", map[string]any{"count": n})
		return nil
	}

	p, err := s.Create(ctx)
	if err != nil {
		return fmt.Errorf("seed default pet: %w", err)
	}
	s.log.Info("bootstrap: default pet created", map[string]any{"pet_id": p.ID})
	return nil
}

func (s *Service) Create(ctx context.Context) (Pet, error) {
	return s.repo.Create(ctx, New(s.now().UTC()))
}

func (s *Service) GetByID(ctx context.Context, id int64) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

// Update escribe los campos tal cual vienen (sin clamp).
func (s *Service) Update(ctx context.Context, id int64, u Update) (Pet, error) {
	if err := u.Validate(); err != nil {
		return Pet{}, err
	}
	return s.repo.Mutate(ctx, id, func(p *Pet) error {
		*p = p.Apply(u)
		return nil
	})
}

// Act aplica una acción del jugador. amount nil = DefaultAmount.
func (s *Service) Act(ctx context.Context, id int64, action Action, amount *float64) (Pet, error) {
	amt := DefaultAmount
	if amount != nil {
		amt = *amount
	}

	// Validar antes de tomar el lock.
	if _, err := (Pet{}).ApplyAction(action, amt); err != nil {
		return Pet{}, err
	}

	return s.repo.Mutate(ctx, id, func(p *Pet) error {
		next, err := p.ApplyAction(action, amt)
		if err != nil {
			return err
		}
		*p = next
		return nil
	})
}

type DecayResult struct {
	RunID string
	Count int
}

// DecayAll aplica un tick a todas las mascotas.
// Cada llamada es un tick: llamarla dos veces en el mismo minuto decae el doble.
func (s *Service) DecayAll(ctx context.Context) (DecayResult, error) {
	runID := uuid.NewString()
	now := s.now().UTC()
	start := time.Now()

	n, err := s.repo.MutateAll(ctx, func(p *Pet) {
		*p = p.Decay(s.rules, now)
	})
	if err != nil {
		s.log.Error("decay failed", map[string]any{"run_id": runID, "err": err.Error()})
		return DecayResult{}, err
	}

	s.log.Info("decay applied", map[string]any{
		"run_id":      runID,
		"count":       n,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return DecayResult{RunID: runID, Count: n}, nil
}
