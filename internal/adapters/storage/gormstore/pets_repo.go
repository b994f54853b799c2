package gormstore

import (
	"context"
	"errors"

	"virtual-pet/internal/domain/pets"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PetsRepo struct {
	db *gorm.DB
}

func NewPetsRepo(db *gorm.DB) PetsRepo {
	return PetsRepo{db: db}
}

func (r PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	m := toRow(p)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return pets.Pet{}, err
	}
	return fromRow(m), nil
}

func (r PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	var m petRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return fromRow(m), nil
}

func (r PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	var rows []petRow
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]pets.Pet, 0, len(rows))
	for _, m := range rows {
		out = append(out, fromRow(m))
	}
	return out, nil
}

func (r PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	return save(r.db.WithContext(ctx), p)
}

func (r PetsRepo) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&petRow{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r PetsRepo) Mutate(ctx context.Context, id int64, fn pets.MutateFunc) (pets.Pet, error) {
	var out pets.Pet
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m petRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&m).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pets.ErrNotFound
			}
			return err
		}

		p := fromRow(m)
		if err := fn(&p); err != nil {
			return err
		}
		p.ID = id

		if err := save(tx, p); err != nil {
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

func (r PetsRepo) MutateAll(ctx context.Context, fn func(p *pets.Pet)) (int, error) {
	var n int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []petRow
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Order("id ASC").Find(&rows).Error; err != nil {
			return err
		}
		for _, m := range rows {
			p := fromRow(m)
			fn(&p)
			p.ID = m.ID
			if err := save(tx, p); err != nil {
				return err
			}
		}
		n = len(rows)
		return nil
	})
	return n, err
}

func save(db *gorm.DB, p pets.Pet) error {
	res := db.Model(&petRow{}).Where("id = ?", p.ID).Updates(map[string]any{
		"food":       p.Food,
		"water":      p.Water,
		"fun":        p.Fun,
		"xp":         p.XP,
		"level":      p.Level,
		"last_decay": p.LastDecay,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func toRow(p pets.Pet) petRow {
	return petRow{
		ID:        p.ID,
		Food:      p.Food,
		Water:     p.Water,
		Fun:       p.Fun,
		XP:        p.XP,
		Level:     p.Level,
		LastDecay: p.LastDecay,
	}
}

func fromRow(m petRow) pets.Pet {
	return pets.Pet{
		ID:        m.ID,
		Food:      m.Food,
		Water:     m.Water,
		Fun:       m.Fun,
		XP:        m.XP,
		Level:     m.Level,
		LastDecay: m.LastDecay,
	}
}
