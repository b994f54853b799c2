package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"virtual-pet/internal/domain/pets"
)

const petColumns = `id, food, water, fun, xp, level, last_decay`

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(s rowScanner) (pets.Pet, error) {
	var p pets.Pet
	err := s.Scan(&p.ID, &p.Food, &p.Water, &p.Fun, &p.XP, &p.Level, &p.LastDecay)
	return p, err
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO pets (food, water, fun, xp, level, last_decay)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`, p.Food, p.Water, p.Fun, p.XP, p.Level, p.LastDecay)

	if err := row.Scan(&p.ID); err != nil {
		return pets.Pet{}, fmt.Errorf("insert pet: %w", err)
	}
	return p, nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	p, err := scanPet(r.db.QueryRowContext(ctx,
		`SELECT `+petColumns+` FROM pets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+petColumns+` FROM pets ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	return updatePet(ctx, r.db, p)
}

func (r *PetsRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM pets`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Mutate lee con SELECT ... FOR UPDATE dentro de una transacción,
// así una acción y un decay concurrentes no se pisan.
func (r *PetsRepo) Mutate(ctx context.Context, id int64, fn pets.MutateFunc) (pets.Pet, error) {
	var out pets.Pet
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		p, err := scanPet(tx.QueryRowContext(ctx,
			`SELECT `+petColumns+` FROM pets WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return pets.ErrNotFound
			}
			return err
		}

		if err := fn(&p); err != nil {
			return err
		}
		p.ID = id

		if err := updatePet(ctx, tx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return pets.Pet{}, err
	}
	return out, nil
}

func (r *PetsRepo) MutateAll(ctx context.Context, fn func(p *pets.Pet)) (int, error) {
	var n int
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			`SELECT `+petColumns+` FROM pets ORDER BY id ASC FOR UPDATE`)
		if err != nil {
			return err
		}

		all := make([]pets.Pet, 0)
		for rows.Next() {
			p, err := scanPet(rows)
			if err != nil {
				rows.Close()
				return err
			}
			all = append(all, p)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, p := range all {
			id := p.ID
			fn(&p)
			p.ID = id
			if err := updatePet(ctx, tx, p); err != nil {
				return err
			}
		}
		n = len(all)
		return nil
	})
	return n, err
}

func (r *PetsRepo) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func updatePet(ctx context.Context, db execer, p pets.Pet) error {
	res, err := db.ExecContext(ctx, `
		UPDATE pets
		SET
			food = $2,
			water = $3,
			fun = $4,
			xp = $5,
			level = $6,
			last_decay = $7
		WHERE id = $1
	`,
		p.ID,
		p.Food,
		p.Water,
		p.Fun,
		p.XP,
		p.Level,
		p.LastDecay,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}
