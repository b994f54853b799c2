package pets

import (
	"math"
	"time"
)

// Límites de los stats y valores iniciales de una mascota nueva.
const (
	MinStat = 0.0
	MaxStat = 100.0

	DefaultLevel  = 1
	DefaultAmount = 10.0
)

// Action define las acciones que puede hacer el jugador.
// @Enum feed, fill_water, play
type Action string

const (
	ActionFeed      Action = "feed"
	ActionFillWater Action = "fill_water"
	ActionPlay      Action = "play"
)

func (a Action) Valid() bool {
	switch a {
	case ActionFeed, ActionFillWater, ActionPlay:
		return true
	default:
		return false
	}
}

// Pet representa la mascota virtual y sus stats.
type Pet struct {
	ID int64

	Food  float64 // 0..100
	Water float64 // 0..100
	Fun   float64 // 0..100

	XP    float64 // 0..25, se reduce con módulo al subir de nivel
	Level int

	// Informativo: cada decay avanza exactamente un tick, no se usa para calcular tiempo.
	LastDecay time.Time
}

// New crea una mascota con stats por defecto (100/100/100, xp 0, nivel 1).
func New(now time.Time) Pet {
	return Pet{
		Food:      MaxStat,
		Water:     MaxStat,
		Fun:       MaxStat,
		XP:        0,
		Level:     DefaultLevel,
		LastDecay: now,
	}
}

// Valid indica si la mascota cumple los invariantes de stats.
// Update puede dejarla fuera de rango a propósito.
func (p Pet) Valid() bool {
	for _, v := range []float64{p.Food, p.Water, p.Fun} {
		if v < MinStat || v > MaxStat || math.IsNaN(v) {
			return false
		}
	}
	return p.XP >= 0 && p.XP < XPPerLevel && p.Level >= 1
}
