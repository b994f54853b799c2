package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gocarina/gocsv"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pets", listPetsHandler(svc))
	r.Get("/pets/export.csv", exportPetsHandler(svc))

	r.Post("/pet", createPetHandler(svc))
	r.Get("/pet/{petID}", getPetHandler(svc))
	r.Put("/pet/{petID}", updatePetHandler(svc))
	r.Post("/pet/{petID}/action", actionHandler(svc))

	// Tick de decay (cron externo o scheduler interno)
	r.Post("/cron/decay", decayHandler(svc))
}

// petResponse es la mascota tal como la devuelve la API.
type petResponse struct {
	ID        int64     `json:"id"`
	Food      float64   `json:"food"`
	Water     float64   `json:"water"`
	Fun       float64   `json:"fun"`
	XP        float64   `json:"xp"`
	Level     int       `json:"level"`
	LastDecay time.Time `json:"last_decay"`
}

// updatePetRequest: escritura directa, nil = no tocar.
type updatePetRequest struct {
	Food  *float64 `json:"food"`
	Water *float64 `json:"water"`
	Fun   *float64 `json:"fun"`
	XP    *float64 `json:"xp"`
	Level *int     `json:"level"`
}

// actionRequest es el cuerpo de POST /pet/{petID}/action.
type actionRequest struct {
	Action Action   `json:"action" enums:"feed,fill_water,play"`
	Amount *float64 `json:"amount"` // opcional, default 10
}

type decayResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
	RunID  string `json:"run_id"`
}

type petCSVRow struct {
	ID        int64   `csv:"id"`
	Food      float64 `csv:"food"`
	Water     float64 `csv:"water"`
	Fun       float64 `csv:"fun"`
	XP        float64 `csv:"xp"`
	Level     int     `csv:"level"`
	LastDecay string  `csv:"last_decay"`
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Tags pets
// @Produce json
// @Success 200 {array} petResponse
// @Failure 500 {string} string "internal error"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// exportPetsHandler godoc
// @Summary Exportar mascotas en CSV
// @Tags pets
// @Produce text/csv
// @Success 200 {string} string "csv"
// @Failure 500 {string} string "internal error"
// @Router /pets/export.csv [get]
func exportPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		rows := make([]*petCSVRow, 0, len(items))
		for _, p := range items {
			rows = append(rows, &petCSVRow{
				ID:        p.ID,
				Food:      p.Food,
				Water:     p.Water,
				Fun:       p.Fun,
				XP:        p.XP,
				Level:     p.Level,
				LastDecay: p.LastDecay.UTC().Format(time.RFC3339),
			})
		}

		b, err := gocsv.MarshalBytes(&rows)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="pets.csv"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Crea una mascota con stats por defecto (100/100/100, xp 0, nivel 1).
// @Tags pets
// @Produce json
// @Success 201 {object} petResponse
// @Failure 500 {string} string "internal error"
// @Router /pet [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Create(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// getPetHandler godoc
// @Summary Obtener mascota
// @Tags pets
// @Produce json
// @Param petID path int true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid pet id"
// @Failure 404 {string} string "pet not found"
// @Router /pet/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(w, r)
		if !ok {
			return
		}

		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Escribir stats de la mascota
// @Description Sobrescribe los campos enviados sin clamp. Solo rechaza valores no finitos, |v| > 1e12 o level fuera de int32.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path int true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a escribir (todos opcionales)"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 404 {string} string "pet not found"
// @Router /pet/{petID} [put]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(w, r)
		if !ok {
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), id, Update{
			Food:  req.Food,
			Water: req.Water,
			Fun:   req.Fun,
			XP:    req.XP,
			Level: req.Level,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// actionHandler godoc
// @Summary Acción del jugador
// @Description feed suma a food, fill_water a water, play a fun. Tope 100. amount por defecto 10.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path int true "ID de la mascota"
// @Param payload body actionRequest true "Acción y cantidad opcional"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json / invalid action / invalid amount"
// @Failure 404 {string} string "pet not found"
// @Router /pet/{petID}/action [post]
func actionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := petIDParam(w, r)
		if !ok {
			return
		}

		var req actionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Act(r.Context(), id, req.Action, req.Amount)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// decayHandler godoc
// @Summary Aplicar un tick de decay
// @Description Aplica un tick a todas las mascotas. Pensado para llamarse una vez por minuto.
// @Tags cron
// @Produce json
// @Success 200 {object} decayResponse
// @Failure 500 {string} string "internal error"
// @Router /cron/decay [post]
func decayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.DecayAll(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, decayResponse{
			Status: "decay_applied",
			Count:  res.Count,
			RunID:  res.RunID,
		})
	}
}

func petIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "petID"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid pet id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidAction),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		Food:      p.Food,
		Water:     p.Water,
		Fun:       p.Fun,
		XP:        p.XP,
		Level:     p.Level,
		LastDecay: p.LastDecay,
	}
}

// writeJSON serializa antes de escribir el header: si falla, 500 en vez de 200 vacío.
func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}
