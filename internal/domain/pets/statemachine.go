package pets

import (
	"fmt"
	"math"
	"time"
)

// XPPerLevel es el umbral de experiencia para subir un nivel.
const XPPerLevel = 25.0

// Rangos que acepta Update. Fuera de ellos round9 desborda a Inf
// y level no entra en la columna INTEGER.
const (
	MaxWritableMagnitude = 1e12
	MaxLevel             = math.MaxInt32
	MinLevel             = math.MinInt32
)

// Rules son las tasas por tick (un minuto canónico).
type Rules struct {
	FoodPerTick  float64 `yaml:"food_per_tick"`
	WaterPerTick float64 `yaml:"water_per_tick"`
	FunPerTick   float64 `yaml:"fun_per_tick"`
	XPPerTick    float64 `yaml:"xp_per_tick"`
}

func DefaultRules() Rules {
	return Rules{
		FoodPerTick:  0.54,
		WaterPerTick: 0.24,
		FunPerTick:   0.12,
		XPPerTick:    0.1,
	}
}

// Validate exige tasas finitas y no negativas.
func (r Rules) Validate() error {
	for name, v := range map[string]float64{
		"food_per_tick":  r.FoodPerTick,
		"water_per_tick": r.WaterPerTick,
		"fun_per_tick":   r.FunPerTick,
		"xp_per_tick":    r.XPPerTick,
	} {
		if v < 0 || !finite(v) {
			return fmt.Errorf("%w: %s must be a finite number >= 0", ErrInvalidInput, name)
		}
	}
	return nil
}

// ApplyAction suma amount al stat de la acción, con tope en MaxStat.
// Acción desconocida o amount no positivo: error y la mascota queda igual.
func (p Pet) ApplyAction(action Action, amount float64) (Pet, error) {
	if !action.Valid() {
		return p, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	if amount <= 0 || !finite(amount) {
		return p, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}

	switch action {
	case ActionFeed:
		p.Food = math.Min(MaxStat, p.Food+amount)
	case ActionFillWater:
		p.Water = math.Min(MaxStat, p.Water+amount)
	case ActionPlay:
		p.Fun = math.Min(MaxStat, p.Fun+amount)
	}
	return p, nil
}

// Decay aplica exactamente un tick, sin compensar el tiempo real transcurrido.
func (p Pet) Decay(r Rules, now time.Time) Pet {
	p.Food = round9(math.Max(MinStat, p.Food-r.FoodPerTick))
	p.Water = round9(math.Max(MinStat, p.Water-r.WaterPerTick))
	p.Fun = round9(math.Max(MinStat, p.Fun-r.FunPerTick))

	// Redondeo a 9 decimales: sin esto 250 x 0.1 queda en 24.999... y no sube de nivel.
	p.XP = round9(p.XP + r.XPPerTick)
	if p.XP >= XPPerLevel {
		gained := math.Floor(p.XP / XPPerLevel)
		if float64(p.Level)+gained >= MaxLevel {
			p.Level = MaxLevel
		} else {
			p.Level += int(gained)
		}
		p.XP = round9(math.Mod(p.XP, XPPerLevel))
	}

	p.LastDecay = now
	return p
}

// Update es la escritura directa de campos (PUT). nil = no tocar.
type Update struct {
	Food  *float64
	Water *float64
	Fun   *float64
	XP    *float64
	Level *int
}

func (u Update) Empty() bool {
	return u.Food == nil && u.Water == nil && u.Fun == nil && u.XP == nil && u.Level == nil
}

// Validate no controla los rangos del juego (food 250 o level 99 pasan),
// solo que el valor sea representable: finito, |v| <= MaxWritableMagnitude
// y level dentro de int32.
func (u Update) Validate() error {
	for name, v := range map[string]*float64{"food": u.Food, "water": u.Water, "fun": u.Fun, "xp": u.XP} {
		if v != nil && (!finite(*v) || math.Abs(*v) > MaxWritableMagnitude) {
			return fmt.Errorf("%w: %s must be a finite number with |%s| <= %g", ErrInvalidInput, name, name, MaxWritableMagnitude)
		}
	}
	if u.Level != nil && (*u.Level < MinLevel || *u.Level > MaxLevel) {
		return fmt.Errorf("%w: level must fit in int32", ErrInvalidInput)
	}
	return nil
}

// Apply sobrescribe los campos presentes sin clamp.
func (p Pet) Apply(u Update) Pet {
	if u.Food != nil {
		p.Food = *u.Food
	}
	if u.Water != nil {
		p.Water = *u.Water
	}
	if u.Fun != nil {
		p.Fun = *u.Fun
	}
	if u.XP != nil {
		p.XP = *u.XP
	}
	if u.Level != nil {
		p.Level = *u.Level
	}
	return p
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// round9 deja pasar valores donde v*1e9 desbordaría; ahí el float
// ya no tiene decimales que redondear.
func round9(v float64) float64 {
	if !finite(v) || math.Abs(v) >= 1e15 {
		return v
	}
	return math.Round(v*1e9) / 1e9
}
