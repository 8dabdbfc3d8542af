package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/njchilds90/anchorfix"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return p
}

// TestFileValidate tests each validation rule in isolation.
func TestFileValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file File
		want error
	}{
		{"empty file is valid", File{}, nil},
		{"absolute path fallback", File{RandomPostFallback: "/random/"}, nil},
		{"absolute URL fallback", File{RandomPostFallback: "https://blog.example/archives/"}, nil},
		{"relative fallback", File{RandomPostFallback: "archives/"}, ErrInvalidFallback},
		{"known tag classes", File{Classes: map[string][]string{"totop": {"back-top"}}}, nil},
		{"unknown tag classes", File{Classes: map[string][]string{"nope": {"x"}}}, ErrUnknownTag},
		{"blank class", File{Classes: map[string][]string{"darkmode": {" "}}}, ErrEmptyClass},
		{"unknown tag probes", File{Probes: map[string][]string{"nope": {"x"}}}, ErrUnknownTag},
		{"blank probe", File{Probes: map[string][]string{"darkmode": {""}}}, ErrEmptyProbe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.file.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestFilePolicy(t *testing.T) {
	t.Parallel()

	t.Run("nil file yields defaults", func(t *testing.T) {
		t.Parallel()
		var f *File
		p := f.Policy(nil)
		if p.RandomPostFallback != anchorfix.DefaultRandomPostFallback {
			t.Errorf("fallback = %q", p.RandomPostFallback)
		}
	})

	t.Run("overrides apply", func(t *testing.T) {
		t.Parallel()
		f := &File{
			RandomPostFallback: "/random/",
			Classes:            map[string][]string{"totop": {"back-top"}},
			Probes:             map[string][]string{"randomPost": {"theme.random"}},
		}
		p := f.Policy(nil)
		if p.RandomPostFallback != "/random/" {
			t.Errorf("fallback = %q", p.RandomPostFallback)
		}
		classes := p.ButtonClasses[anchorfix.TagToTop]
		if classes[len(classes)-1] != "back-top" || classes[0] != "totopbtn" {
			t.Errorf("classes = %v", classes)
		}
		s := p.Strategies[anchorfix.TagRandomPost]
		if len(s.Probes) != 1 || s.Probes[0] != "theme.random" {
			t.Errorf("probes = %v", s.Probes)
		}
		if s.Fallback == nil {
			t.Error("probe override must keep the fallback")
		}
	})
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		p := writeFile(t, dir, "anchorfix.yaml", `
random_post_fallback: /random/
classes:
  darkmode: [night-toggle]
scripts:
  - theme.js
  - /abs/other.js
`)
		f, err := LoadFile(p)
		if err != nil {
			t.Fatal(err)
		}
		if f.RandomPostFallback != "/random/" {
			t.Errorf("fallback = %q", f.RandomPostFallback)
		}
		scripts := f.ScriptPaths()
		if len(scripts) != 2 || scripts[0] != filepath.Join(dir, "theme.js") || scripts[1] != "/abs/other.js" {
			t.Errorf("scripts = %v", scripts)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()
		p := writeFile(t, t.TempDir(), "bad.yaml", "classes: [unterminated")
		if _, err := LoadFile(p); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("invalid content", func(t *testing.T) {
		t.Parallel()
		p := writeFile(t, t.TempDir(), "bad.yaml", "classes:\n  bogus: [x]\n")
		if _, err := LoadFile(p); !errors.Is(err, ErrUnknownTag) {
			t.Errorf("expected ErrUnknownTag, got %v", err)
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if got := FindConfigFile(filepath.Join(dir, "missing.yaml")); got != "" {
		t.Errorf("missing explicit path should not be found, got %q", got)
	}

	explicit := writeFile(t, dir, "explicit.yaml", "")
	if got := FindConfigFile(explicit); got != explicit {
		t.Errorf("FindConfigFile(explicit) = %q", got)
	}

	writeFile(t, dir, DefaultConfigFile, "")
	if got := FindConfigFile(""); got != filepath.Join(dir, DefaultConfigFile) {
		t.Errorf("FindConfigFile(\"\") = %q, want cwd file", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("explicit missing path should fail, got %v", err)
	}
	f, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if f != nil && f.dir == dir {
		t.Error("no file in cwd should not load one from it")
	}
}

func TestXDGConfigDir(t *testing.T) {
	t.Parallel()

	if filepath.Base(XDGConfigDir()) != AppName {
		t.Errorf("XDGConfigDir() = %q", XDGConfigDir())
	}
}
