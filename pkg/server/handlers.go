package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/sunburst/pkg/core/geometry"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/tree"
)

// layoutResponse is the body of a successful /v1/layout call.
type layoutResponse struct {
	RunID    string            `json:"run_id"`
	Cached   bool              `json:"cached"`
	Geometry geometry.Geometry `json:"geometry"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	t, err := s.readTree(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		writeError(w, err)
		return
	}

	g, hit, err := s.runner.NormalizeWithCacheInfo(r.Context(), t, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		RunID:    uuid.NewString(),
		Cached:   hit,
		Geometry: g,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	t, err := s.readTree(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		writeError(w, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), t, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	cache := "miss"
	if res.CacheInfo.RenderHit {
		cache = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Run-ID", res.RunID)
	w.Header().Set("X-Tree-Hash", res.TreeHash)
	w.Header().Set("X-Cache", cache)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// readTree decodes the request body according to its Content-Type. An
// empty Content-Type is treated as JSON.
func (s *Server) readTree(w http.ResponseWriter, r *http.Request) (tree.Tree, error) {
	format := tree.FormatJSON
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return tree.Tree{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "bad Content-Type")
		}
		switch mt {
		case "application/json":
			format = tree.FormatJSON
		case "application/yaml", "application/x-yaml", "text/yaml":
			format = tree.FormatYAML
		case "application/hcl", "text/hcl":
			format = tree.FormatHCL
		default:
			return tree.Tree{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported Content-Type %q", mt)
		}
	}

	body := r.Body
	if s.cfg.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return tree.Tree{}, errors.New(errors.ErrCodeTooLarge, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return tree.Tree{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	return tree.Decode(data, format)
}

// options overlays query parameters on the server defaults.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = nil
	q := r.URL.Query()
	p := queryParser{q: q}

	if v := q.Get("viz"); v != "" {
		opts.VizType = v
	}
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}
	if v, ok := p.float("center_radius"); ok {
		opts.CenterRadius = &v
	}
	if v, ok := p.float("padding"); ok {
		opts.Padding = &v
	}
	if v, ok := p.float("threshold"); ok {
		opts.Threshold = v
	}
	if v, ok := p.int("width"); ok {
		opts.Width = v
	}
	if v, ok := p.int("height"); ok {
		opts.Height = v
	}
	if v, ok := p.bool("strict"); ok {
		opts.Strict = v
	}
	if v, ok := p.bool("debug"); ok {
		opts.Debug = v
	}
	if v, ok := p.bool("detailed"); ok {
		opts.Detailed = v
	}
	if v, ok := p.bool("hide_items"); ok {
		opts.HideItems = v
	}
	if p.err != nil {
		return pipeline.Options{}, p.err
	}
	return opts, nil
}

// queryParser records the first malformed parameter.
type queryParser struct {
	q   map[string][]string
	err error
}

func (p *queryParser) raw(name string) (string, bool) {
	vs := p.q[name]
	if len(vs) == 0 || vs[0] == "" || p.err != nil {
		return "", false
	}
	return vs[0], true
}

func (p *queryParser) float(name string) (float64, bool) {
	s, ok := p.raw(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.err = errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not a number", name, s)
		return 0, false
	}
	return v, true
}

func (p *queryParser) int(name string) (int, bool) {
	s, ok := p.raw(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		p.err = errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not an integer", name, s)
		return 0, false
	}
	return v, true
}

func (p *queryParser) bool(name string) (bool, bool) {
	s, ok := p.raw(name)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(strings.ToLower(s))
	if err != nil {
		p.err = errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not a boolean", name, s)
		return false, false
	}
	return v, true
}

// statusFor maps error codes to HTTP statuses.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeMalformedTree, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidVizType, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(code),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
