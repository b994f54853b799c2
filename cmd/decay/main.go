// decay dispara un tick contra POST /cron/decay.
// Pensado para cron (una vez por minuto):
//
//	* * * * * PET_API_URL=http://localhost:8080 decay
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"virtual-pet/internal/platform/httpclient"
	"virtual-pet/internal/platform/logger"
)

type decayResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
	RunID  string `json:"run_id"`
}

func main() {
	baseURL := flag.String("url", envOr("PET_API_URL", "http://localhost:8080"), "base URL del servicio")
	timeout := flag.Duration("timeout", 10*time.Second, "timeout HTTP")
	flag.Parse()

	log := logger.NewFromEnv().With(map[string]any{"cmd": "decay"})

	client, err := httpclient.NewWithBaseURL(*baseURL, *timeout)
	if err != nil {
		log.Error("invalid url", map[string]any{"err": err.Error()})
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var res decayResponse
	if err := client.DoJSON(ctx, http.MethodPost, "/cron/decay", nil, nil, &res); err != nil {
		log.Error("decay request failed", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	log.Info("decay applied", map[string]any{
		"status": res.Status,
		"count":  res.Count,
		"run_id": res.RunID,
	})
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
