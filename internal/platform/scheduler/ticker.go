package scheduler

import (
	"context"
	"time"

	"virtual-pet/internal/platform/logger"
)

// Job es una unidad de trabajo periódica.
type Job func(ctx context.Context) error

// Every ejecuta job una vez por interval hasta que ctx se cancele.
// Las ejecuciones no se solapan: si un job tarda más que interval,
// los ticks perdidos se descartan (no se recuperan).
func Every(ctx context.Context, interval time.Duration, name string, log logger.Logger, job Job) {
	if interval <= 0 {
		return
	}
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"job": name})

	t := time.NewTicker(interval)
	defer t.Stop()

	log.Info("scheduler started", map[string]any{"interval": interval.String()})
	for {
		select {
		case <-ctx.Done():
			log.Info("scheduler stopped", nil)
			return
		case <-t.C:
			if err := job(ctx); err != nil {
				log.Warn("job failed", map[string]any{"err": err.Error()})
			}
		}
	}
}
