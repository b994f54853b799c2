package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"virtual-pet/internal/adapters/storage/memory"
	"virtual-pet/internal/domain/pets"
	"virtual-pet/internal/router"
)

type petBody struct {
	ID    int64   `json:"id"`
	Food  float64 `json:"food"`
	Water float64 `json:"water"`
	Fun   float64 `json:"fun"`
	XP    float64 `json:"xp"`
	Level int     `json:"level"`
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	svc := pets.NewService(memory.NewPetRepo(), pets.DefaultRules(), nil)
	if err := svc.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	ts := httptest.NewServer(router.NewRouter(router.Options{Pets: svc}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_PetLifecycle(t *testing.T) {
	ts := newServer(t)

	// 1) La mascota por defecto existe tras el bootstrap
	p := getPet(t, ts.URL, "/pet/1")
	if p.Food != 100 || p.Water != 100 || p.Fun != 100 || p.XP != 0 || p.Level != 1 {
		t.Fatalf("unexpected default pet: %+v", p)
	}

	// 2) Un tick de decay
	{
		st, body := doReq(t, ts.URL, "POST", "/cron/decay", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 decay, got %d body=%s", st, string(body))
		}
		var resp struct {
			Status string `json:"status"`
			Count  int    `json:"count"`
			RunID  string `json:"run_id"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "decay_applied" || resp.Count != 1 || resp.RunID == "" {
			t.Fatalf("unexpected decay response: %s", string(body))
		}
	}

	p = getPet(t, ts.URL, "/pet/1")
	if !near(p.Food, 99.46) || !near(p.Water, 99.76) || !near(p.Fun, 99.88) || !near(p.XP, 0.1) {
		t.Fatalf("unexpected stats after decay: %+v", p)
	}

	// 3) feed sin amount => +10 con tope 100
	{
		st, body := doReq(t, ts.URL, "POST", "/pet/1/action", map[string]any{"action": "feed"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 feed, got %d body=%s", st, string(body))
		}
		var got petBody
		_ = json.Unmarshal(body, &got)
		if got.Food != 100 {
			t.Fatalf("expected food clamped to 100, got %v", got.Food)
		}
	}

	// 4) play con amount explícito
	{
		st, body := doReq(t, ts.URL, "PUT", "/pet/1", map[string]any{"fun": 20})
		if st != http.StatusOK {
			t.Fatalf("expected 200 put, got %d body=%s", st, string(body))
		}
		st, body = doReq(t, ts.URL, "POST", "/pet/1/action", map[string]any{"action": "play", "amount": 5.5})
		if st != http.StatusOK {
			t.Fatalf("expected 200 play, got %d body=%s", st, string(body))
		}
		var got petBody
		_ = json.Unmarshal(body, &got)
		if got.Fun != 25.5 {
			t.Fatalf("expected fun=25.5, got %v", got.Fun)
		}
	}

	// 5) PUT escribe sin validar rango
	{
		st, body := doReq(t, ts.URL, "PUT", "/pet/1", map[string]any{"level": 99})
		if st != http.StatusOK {
			t.Fatalf("expected 200 put, got %d body=%s", st, string(body))
		}
		if got := getPet(t, ts.URL, "/pet/1"); got.Level != 99 {
			t.Fatalf("expected level=99, got %d", got.Level)
		}
	}
}

func TestHTTP_Errors(t *testing.T) {
	ts := newServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown pet", "GET", "/pet/404", nil, http.StatusNotFound},
		{"bad id", "GET", "/pet/abc", nil, http.StatusBadRequest},
		{"unknown action", "POST", "/pet/1/action", map[string]any{"action": "dance"}, http.StatusBadRequest},
		{"negative amount", "POST", "/pet/1/action", map[string]any{"action": "feed", "amount": -3}, http.StatusBadRequest},
		{"action on unknown pet", "POST", "/pet/9/action", map[string]any{"action": "feed"}, http.StatusNotFound},
		{"put unknown field", "PUT", "/pet/1", map[string]any{"name": "Milo"}, http.StatusBadRequest},
		{"put fractional level", "PUT", "/pet/1", map[string]any{"level": 2.5}, http.StatusBadRequest},
		{"put unknown pet", "PUT", "/pet/9", map[string]any{"food": 1}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, body := doReq(t, ts.URL, tc.method, tc.path, tc.body)
			if st != tc.want {
				t.Fatalf("expected %d, got %d body=%s", tc.want, st, string(body))
			}
		})
	}

	// Los rechazos no tocan el estado
	if p := getPet(t, ts.URL, "/pet/1"); p.Food != 100 || p.Level != 1 {
		t.Fatalf("state changed by rejected requests: %+v", p)
	}
}

func TestHTTP_HugeWritesRejectedAndDecayStaysEncodable(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "PUT", "/pet/1", map[string]any{"xp": 1e300, "food": 1e300})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for xp=1e300, got %d body=%s", st, string(body))
	}

	// El mayor valor aceptado sigue siendo serializable tras el decay
	st, body = doReq(t, ts.URL, "PUT", "/pet/1", map[string]any{"xp": pets.MaxWritableMagnitude, "food": pets.MaxWritableMagnitude})
	if st != http.StatusOK {
		t.Fatalf("expected 200 put, got %d body=%s", st, string(body))
	}
	if st, body = doReq(t, ts.URL, "POST", "/cron/decay", nil); st != http.StatusOK {
		t.Fatalf("expected 200 decay, got %d body=%s", st, string(body))
	}

	p := getPet(t, ts.URL, "/pet/1")
	if p.Level != pets.MaxLevel || p.XP < 0 || p.XP >= pets.XPPerLevel {
		t.Fatalf("unexpected pet after decay: %+v", p)
	}

	st, body = doReq(t, ts.URL, "GET", "/pets", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list, got %d", st)
	}
	var list []petBody
	if err := json.Unmarshal(body, &list); err != nil || len(list) != 1 {
		t.Fatalf("list not decodable: %v %s", err, string(body))
	}
}

func TestHTTP_CreateListExport(t *testing.T) {
	ts := newServer(t)

	st, body := doReq(t, ts.URL, "POST", "/pet", nil)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create, got %d body=%s", st, string(body))
	}
	var created petBody
	_ = json.Unmarshal(body, &created)
	if created.ID != 2 {
		t.Fatalf("expected id=2, got %d", created.ID)
	}

	st, body = doReq(t, ts.URL, "GET", "/pets", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list, got %d", st)
	}
	var list []petBody
	_ = json.Unmarshal(body, &list)
	if len(list) != 2 || list[0].ID != 1 || list[1].ID != 2 {
		t.Fatalf("unexpected list: %s", string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/pets/export.csv", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 export, got %d", st)
	}
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "id,food,water,fun,xp,level,last_decay") {
		t.Fatalf("unexpected csv: %q", string(body))
	}
}

func TestHTTP_HealthAndSwagger(t *testing.T) {
	ts := newServer(t)

	if st, body := doReq(t, ts.URL, "GET", "/health", nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: %d %s", st, string(body))
	}

	st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 doc.json, got %d", st)
	}
	if !strings.Contains(string(body), "/cron/decay") {
		t.Fatalf("doc.json missing decay path")
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func getPet(t *testing.T, baseURL, path string) petBody {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", path, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get pet, got %d body=%s", st, string(body))
	}
	var p petBody
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatalf("decode pet: %v", err)
	}
	return p
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
