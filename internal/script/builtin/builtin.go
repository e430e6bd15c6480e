// Package builtin registers the scripts shipped with the binary.
// Import it for its side effects:
//
//	import _ "github.com/vovakirdan/pixel-hopper/internal/script/builtin"
package builtin

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/vovakirdan/pixel-hopper/internal/registry"
	"github.com/vovakirdan/pixel-hopper/internal/script"
)

//go:embed *.yaml *.toml
var files embed.FS

func init() {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		panic(fmt.Sprintf("builtin: %v", err))
	}
	for _, e := range entries {
		s := mustParse(e.Name())
		registry.Register(s.ID, s.Clone)
	}
}

func mustParse(name string) *script.Script {
	format, err := script.FormatOf(name)
	if err != nil {
		panic(fmt.Sprintf("builtin: %v", err))
	}
	data, err := files.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("builtin: %v", err))
	}
	s, err := script.Parse(data, format)
	if err != nil {
		panic(fmt.Sprintf("builtin: %s: %v", name, err))
	}
	return s
}
