package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/njchilds90/anchorfix"
)

// AppName is the application name used for XDG directory paths.
const AppName = "anchorfix"

// File is the structure of the .anchorfix.yaml configuration file.
type File struct {
	// RandomPostFallback is where the random-post button goes when the
	// page has no random-post function. Empty keeps the default.
	RandomPostFallback string `yaml:"random_post_fallback,omitempty"`

	// Classes adds class aliases per tag, keyed by tag name
	// (darkmode, asideSwitch, consoleSwitch, bannerButton,
	// commentBarrage, totop, randomPost, sitePage).
	Classes map[string][]string `yaml:"classes,omitempty"`

	// Probes replaces the capability names tried for a tag, in order.
	Probes map[string][]string `yaml:"probes,omitempty"`

	// Scripts are theme JavaScript files evaluated before simulating
	// clicks. Relative paths are resolved against the config file.
	Scripts []string `yaml:"scripts,omitempty"`

	// dir is the directory the file was loaded from.
	dir string
}

// Validate checks the file and returns the first problem found.
func (f *File) Validate() error {
	if fb := f.RandomPostFallback; fb != "" && !strings.HasPrefix(fb, "/") {
		u, err := url.Parse(fb)
		if err != nil || !u.IsAbs() {
			return ErrInvalidFallback
		}
	}
	for name, classes := range f.Classes {
		if _, ok := anchorfix.ParseTag(name); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTag, name)
		}
		for _, c := range classes {
			if strings.TrimSpace(c) == "" {
				return fmt.Errorf("%w for tag %q", ErrEmptyClass, name)
			}
		}
	}
	for name, probes := range f.Probes {
		if _, ok := anchorfix.ParseTag(name); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTag, name)
		}
		for _, p := range probes {
			if strings.TrimSpace(p) == "" {
				return fmt.Errorf("%w for tag %q", ErrEmptyProbe, name)
			}
		}
	}
	return nil
}

// Policy builds an anchorfix policy from the defaults plus this file.
// A nil File yields the default policy. The file must be valid.
func (f *File) Policy(logger *slog.Logger) *anchorfix.Policy {
	p := anchorfix.DefaultPolicy()
	p.Logger = logger
	if f == nil {
		return p
	}
	if f.RandomPostFallback != "" {
		p.RandomPostFallback = f.RandomPostFallback
	}
	for name, classes := range f.Classes {
		if tag, ok := anchorfix.ParseTag(name); ok {
			for _, c := range classes {
				p.AddButtonClasses(tag, strings.TrimSpace(c))
			}
		}
	}
	for name, probes := range f.Probes {
		tag, ok := anchorfix.ParseTag(name)
		if !ok {
			continue
		}
		s := p.Strategies[tag]
		s.Probes = append([]string(nil), probes...)
		p.Strategies[tag] = s
	}
	return p
}

// ScriptPaths returns Scripts with relative paths resolved against the
// directory the file was loaded from.
func (f *File) ScriptPaths() []string {
	if f == nil {
		return nil
	}
	paths := make([]string, 0, len(f.Scripts))
	for _, s := range f.Scripts {
		if !filepath.IsAbs(s) && f.dir != "" {
			s = filepath.Join(f.dir, s)
		}
		paths = append(paths, s)
	}
	return paths
}

// XDGConfigDir returns the XDG config directory for anchorfix.
// On Linux: ~/.config/anchorfix
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
