package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sunburst/pkg/observability"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	logger := log.New(&bytes.Buffer{})
	return New(pipeline.NewRunner(nil, nil, logger), pipeline.Options{}, cfg, logger)
}

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("../tree/testdata/" + name)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func do(s http.Handler, method, target, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not JSON: %v\n%s", err, rec.Body.String())
	}
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := do(s, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestVersion(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := do(s, http.MethodGet, "/version", "", nil)
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["version"] == "" {
		t.Errorf("version missing: %v", body)
	}
}

func TestLayout(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := do(s, http.MethodPost, "/v1/layout?center_radius=0.5", "application/json", fixture(t, "mission-critical.json"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var body layoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.RunID == "" {
		t.Error("run_id missing")
	}
	if len(body.Geometry.Rings) != 9 || len(body.Geometry.Items) != 67 {
		t.Errorf("rings = %d, items = %d", len(body.Geometry.Rings), len(body.Geometry.Items))
	}
	if body.Geometry.Rings[0].Radius[1] != 0.5 {
		t.Errorf("center radius = %v, want 0.5", body.Geometry.Rings[0].Radius[1])
	}
}

func TestLayoutBodyFormats(t *testing.T) {
	s := newTestServer(t, Config{})
	tests := []struct {
		file, contentType string
	}{
		{"mission-critical.json", ""},
		{"mission-critical.json", "application/json; charset=utf-8"},
		{"mission-critical.yaml", "application/yaml"},
		{"mission-critical.yaml", "text/yaml"},
		{"mission-critical.hcl", "application/hcl"},
	}
	for _, tt := range tests {
		t.Run(tt.file+" "+tt.contentType, func(t *testing.T) {
			rec := do(s, http.MethodPost, "/v1/layout", tt.contentType, fixture(t, tt.file))
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRender(t *testing.T) {
	s := newTestServer(t, Config{})
	body := fixture(t, "mission-critical.json")

	rec := do(s, http.MethodPost, "/v1/render?debug=true&title=Assets", "application/json", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("X-Run-ID") == "" || rec.Header().Get("X-Tree-Hash") == "" {
		t.Error("run headers missing")
	}
	if !strings.Contains(rec.Body.String(), `id="item-outlines"`) {
		t.Error("debug outlines missing from svg")
	}

	rec = do(s, http.MethodPost, "/v1/render?format=png", "application/json", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("png status = %d: %s", rec.Code, rec.Body.String())
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("png body does not start with the PNG signature")
	}
}

func TestRenderErrors(t *testing.T) {
	s := newTestServer(t, Config{MaxBodyBytes: 4096})
	valid := fixture(t, "mission-critical.json")
	malformed := []byte(`{"centerName":"c","arcs":[{"angle":[0,90],"layers":[]}]}`)

	tests := []struct {
		name        string
		target      string
		contentType string
		body        []byte
		status      int
		code        string
	}{
		{"bad format", "/v1/render?format=gif", "", valid, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad viz", "/v1/render?viz=tower", "", valid, http.StatusBadRequest, "INVALID_VIZ_TYPE"},
		{"bad number", "/v1/render?width=wide", "", valid, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad json", "/v1/render", "", []byte("{"), http.StatusBadRequest, "INVALID_INPUT"},
		{"content type", "/v1/render", "text/csv", valid, http.StatusBadRequest, "INVALID_FORMAT"},
		{"strict", "/v1/render?strict=true", "", malformed, http.StatusBadRequest, "MALFORMED_TREE"},
		{"nodelink png", "/v1/render?viz=nodelink&format=png", "", valid, http.StatusNotImplemented, "UNSUPPORTED"},
		{"huge canvas", "/v1/render?format=png&width=100000000&height=100000000", "", valid, http.StatusBadRequest, "INVALID_CONFIG"},
		{"too large", "/v1/render", "", bytes.Repeat([]byte(" "), 5000), http.StatusRequestEntityTooLarge, "TOO_LARGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, http.MethodPost, tt.target, tt.contentType, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			if got := decodeError(t, rec)["code"]; got != tt.code {
				t.Errorf("code = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Config{Rate: 0.001, Burst: 1})
	body := fixture(t, "mission-critical.json")

	if rec := do(s, http.MethodPost, "/v1/layout", "", body); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}
	rec := do(s, http.MethodPost, "/v1/layout", "", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After missing")
	}

	// Health checks are not limited.
	if rec := do(s, http.MethodGet, "/healthz", "", nil); rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d", rec.Code)
	}
}

func TestRateLimiterSweepsIdleVisitors(t *testing.T) {
	rl := newRateLimiter(1, 1)
	now := time.Unix(1000, 0)
	rl.now = func() time.Time { return now }

	rl.limiter("10.0.0.1")
	now = now.Add(2 * visitorTTL)
	rl.limiter("10.0.0.2")

	if _, ok := rl.visitors["10.0.0.1"]; ok {
		t.Error("idle visitor was not swept")
	}
	if _, ok := rl.visitors["10.0.0.2"]; !ok {
		t.Error("active visitor missing")
	}
}

func TestHTTPHooks(t *testing.T) {
	observability.Reset()
	t.Cleanup(observability.Reset)
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)

	s := newTestServer(t, Config{})
	do(s, http.MethodGet, "/healthz", "", nil)

	if hooks.requests != 1 || hooks.lastStatus != http.StatusOK {
		t.Errorf("hooks = %+v", hooks)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	requests   int
	lastStatus int
}

func (h *recordingHTTPHooks) OnRequest(context.Context, string, string) { h.requests++ }

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.lastStatus = status
}
