package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/sunburst/pkg/errors"
)

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
[chart]
center_radius = 0.25
padding = 0.0
formats = ["svg", "png"]
width = 1600
debug = true

[cache]
redis_url = "redis://localhost:6379/0"

[server]
addr = ":9090"
timeout = "5s"
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if c.Chart.CenterRadius == nil || *c.Chart.CenterRadius != 0.25 {
		t.Errorf("center_radius = %v", c.Chart.CenterRadius)
	}
	if c.Chart.Padding == nil || *c.Chart.Padding != 0 {
		t.Errorf("padding = %v, want explicit 0", c.Chart.Padding)
	}
	if strings.Join(c.Chart.Formats, ",") != "svg,png" {
		t.Errorf("formats = %v", c.Chart.Formats)
	}
	if c.Chart.Width != 1600 || !c.Chart.Debug {
		t.Errorf("chart = %+v", c.Chart)
	}
	if c.Cache.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("redis_url = %q", c.Cache.RedisURL)
	}
	if c.Server.Addr != ":9090" || c.Server.Timeout.Duration != 5*time.Second {
		t.Errorf("server = %+v", c.Server)
	}
	// Unset values keep their defaults.
	if c.Server.Burst != DefaultBurst || c.Server.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("server defaults not applied: %+v", c.Server)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[chart\n"},
		{"unknown key", "[chart]\ncolour = \"red\"\n"},
		{"unknown table", "[printer]\nname = \"x\"\n"},
		{"bad format", "[chart]\nformats = [\"gif\"]\n"},
		{"center radius", "[chart]\ncenter_radius = 1.5\n"},
		{"bad duration", "[server]\ntimeout = \"soon\"\n"},
		{"negative rate", "[server]\nrate = -1.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.toml")

	c, err := Load(missing, true)
	if err != nil {
		t.Fatalf("Load(optional) error = %v", err)
	}
	if c.Server.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want default", c.Server.Addr)
	}

	if _, err := Load(missing, false); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(required) error = %v, want FILE_NOT_FOUND", err)
	}

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[chart]\nviz_type = \"nodelink\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = Load(path, false)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Chart.VizType != "nodelink" {
		t.Errorf("viz_type = %q", c.Chart.VizType)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	in := Default()
	in.Cache.Dir = "/tmp/sunburst"

	data, err := Write(in)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Write()) error = %v\n%s", err, data)
	}
	if out.Server != in.Server || out.Cache != in.Cache {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/xdg", "sunburst", "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}
