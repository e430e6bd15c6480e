// Package script loads intro scripts: the messages the revealer types, with
// a title, an optional banner for the fade-in and an optional typing speed.
// Scripts are YAML or TOML files; the format is picked by file extension.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/pixel-hopper/internal/typewriter"
)

// Script is one intro text.
type Script struct {
	ID             string   `yaml:"id" toml:"id"`
	Title          string   `yaml:"title" toml:"title"`
	Banner         string   `yaml:"banner,omitempty" toml:"banner,omitempty"`
	Players        int      `yaml:"players,omitempty" toml:"players,omitempty"`
	CharIntervalMS int      `yaml:"char_interval_ms,omitempty" toml:"char_interval_ms,omitempty"` // 0 = configured default
	Paragraphs     []string `yaml:"paragraphs" toml:"paragraphs"`

	// Source is the file the script was loaded from, empty for built-ins.
	Source string `yaml:"-" toml:"-"`
}

// Format identifies a script file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var (
	// ErrUnknownFormat is returned for files that are neither YAML nor TOML.
	ErrUnknownFormat = errors.New("script: unknown file format")
	// ErrInvalid is wrapped by every validation failure.
	ErrInvalid = errors.New("script: invalid script")
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// FormatOf returns the format implied by a file name.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
}

// Parse decodes and validates a script.
func Parse(data []byte, format Format) (*Script, error) {
	s, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func decode(data []byte, format Format) (*Script, error) {
	var s Script
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("script: failed to parse yaml: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return nil, fmt.Errorf("script: failed to parse toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("script: unknown toml key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &s, nil
}

// LoadFile reads a script file. A script without an ID takes the file name.
func LoadFile(path string) (*Script, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: failed to read %s: %w", path, err)
	}

	s, err := decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.ID == "" {
		s.ID = idFromPath(path)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Source = path
	return s, nil
}

func idFromPath(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Validate checks that the script can be revealed.
func (s *Script) Validate() error {
	switch {
	case !idPattern.MatchString(s.ID):
		return fmt.Errorf("%w: id %q must be lowercase letters, digits, '-' or '_'", ErrInvalid, s.ID)
	case s.CharIntervalMS < 0:
		return fmt.Errorf("%w: char_interval_ms must not be negative, got %d", ErrInvalid, s.CharIntervalMS)
	case s.Players < 0:
		return fmt.Errorf("%w: players must not be negative, got %d", ErrInvalid, s.Players)
	case s.Message().Empty():
		return fmt.Errorf("%w: %s has no text", ErrInvalid, s.ID)
	}
	return nil
}

// Name returns the title, or the ID for untitled scripts.
func (s *Script) Name() string {
	if s.Title != "" {
		return s.Title
	}
	return s.ID
}

// Message returns the text to reveal. Paragraphs are separated by a blank
// line.
func (s *Script) Message() typewriter.Message {
	msg := make(typewriter.Message, 0, 2*len(s.Paragraphs))
	for i, p := range s.Paragraphs {
		if i > 0 {
			msg = append(msg, "")
		}
		msg = append(msg, strings.TrimRight(p, "\n"))
	}
	return msg
}

// CharInterval returns the script's typing speed, or fallback when the
// script does not set one.
func (s *Script) CharInterval(fallback time.Duration) time.Duration {
	if s.CharIntervalMS > 0 {
		return time.Duration(s.CharIntervalMS) * time.Millisecond
	}
	return fallback
}

// Clone returns a deep copy.
func (s *Script) Clone() *Script {
	c := *s
	c.Paragraphs = append([]string(nil), s.Paragraphs...)
	return &c
}
