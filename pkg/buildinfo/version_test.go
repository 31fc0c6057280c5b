package buildinfo

import "testing"

func TestShortCommit(t *testing.T) {
	tests := []struct {
		commit, want string
	}{
		{"none", "none"},
		{"0123456", "0123456"},
		{"0123456789abcdef", "0123456"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := (Info{Commit: tt.commit}).ShortCommit(); got != tt.want {
			t.Errorf("ShortCommit(%q) = %q, want %q", tt.commit, got, tt.want)
		}
	}
}

func TestTemplate(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })
	Version, Commit, Date = "v1.2.0", "abcdef0123", "2026-01-02"

	want := "{{.Name}} v1.2.0 (abcdef0, built 2026-01-02)\n"
	if got := Template(); got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
	if got := Get(); got != (Info{"v1.2.0", "abcdef0123", "2026-01-02"}) {
		t.Errorf("Get() = %+v", got)
	}
}
