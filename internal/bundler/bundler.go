// Package bundler turns the extension's frontend sources into library
// chunks and a template blob. The bundling itself is delegated to an
// external program speaking a small JSON protocol over stdin and stdout.
package bundler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/extkit/extbuild/internal/gateway"
)

// ErrNotConfigured is returned when a bundled extension is built without a
// bundler command.
var ErrNotConfigured = errors.New("bundler.command is not configured")

// Config is the bundler request.
type Config struct {
	// SourcePath is the client root the patterns are relative to.
	SourcePath string `json:"sourcePath"`
	ModuleID   string `json:"moduleId"`
	// DestinationPath receives the transpiled sources.
	DestinationPath string `json:"destinationPath"`
	// ChunkOrder lists the chunks to produce; empty means transpile only.
	ChunkOrder    []string            `json:"chunkOrder"`
	ChunkPatterns map[string][]string `json:"chunkPatterns"`
	TemplateDirs  []string            `json:"templateDirs"`
	// File, when set, limits transpilation to one source file, relative to
	// the project directory.
	File string `json:"file,omitempty"`
}

// Output is the bundler result.
type Output struct {
	Chunks    map[string]string `json:"chunks"`
	Templates string            `json:"templates"`
}

// Bundler builds frontend assets.
type Bundler interface {
	Build(ctx context.Context, cfg Config) (*Output, error)
}

// ModuleConfig returns the request for a module's bundle: chunks "init" and
// "module-<id>", sources under src/files/client, templates from the module's
// res/templates.
func ModuleConfig(moduleID, destination string) Config {
	chunk := "module-" + moduleID
	return Config{
		SourcePath:      "src/files/client",
		ModuleID:        moduleID,
		DestinationPath: destination,
		ChunkOrder:      []string{"init", chunk},
		ChunkPatterns: map[string][]string{
			"init": {},
			chunk:  {"custom/modules/" + moduleID + "/src/**/*.js"},
		},
		TemplateDirs: []string{"src/files/client/custom/modules/" + moduleID + "/res/templates"},
	}
}

// TranspileConfig returns a request producing no chunks.
func TranspileConfig(moduleID, destination string) Config {
	return Config{
		SourcePath:      "src/files/client",
		ModuleID:        moduleID,
		DestinationPath: destination,
		ChunkOrder:      []string{},
		ChunkPatterns:   map[string][]string{},
		TemplateDirs:    []string{},
	}
}

// External runs a configured command in the project directory.
type External struct {
	Runner  gateway.Runner
	Command []string
	Dir     string
}

// Build sends cfg as JSON on stdin and decodes the Output from stdout.
func (e *External) Build(ctx context.Context, cfg Config) (*Output, error) {
	if len(e.Command) == 0 {
		return nil, ErrNotConfigured
	}

	req, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding bundler request: %w", err)
	}

	stdout, err := e.Runner.Output(ctx, gateway.Cmd{
		Name:  e.Command[0],
		Args:  e.Command[1:],
		Dir:   e.Dir,
		Stdin: bytes.NewReader(req),
	})
	if err != nil {
		return nil, fmt.Errorf("running bundler: %w", err)
	}

	var out Output
	if err := json.Unmarshal(stdout, &out); err != nil {
		return nil, fmt.Errorf("decoding bundler output: %w", err)
	}

	if missing := missingChunks(cfg.ChunkOrder, out.Chunks); len(missing) > 0 {
		return nil, fmt.Errorf("bundler output is missing chunks %v", missing)
	}
	return &out, nil
}

func missingChunks(order []string, chunks map[string]string) []string {
	var missing []string
	for _, name := range order {
		if _, ok := chunks[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
