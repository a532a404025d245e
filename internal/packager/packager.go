package packager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/extkit/extbuild/internal/archive"
	"github.com/extkit/extbuild/internal/bundler"
	"github.com/extkit/extbuild/internal/composer"
	"github.com/extkit/extbuild/internal/fsutil"
	"github.com/extkit/extbuild/internal/layout"
	"github.com/extkit/extbuild/internal/logging"
	"github.com/extkit/extbuild/internal/manifest"
)

// Hook runs on the staged tree after dependencies are installed and before
// the manifest is written.
type Hook func(ctx context.Context, stagingDir string) error

// ScriptRunner runs auxiliary build scripts.
type ScriptRunner interface {
	RunScript(ctx context.Context, dir, script string) error
}

// Packager builds extension archives for one project.
type Packager struct {
	Project  layout.Project
	Bundler  bundler.Bundler
	Composer *composer.Installer
	Scripts  ScriptRunner
	Hook     Hook
	// Now supplies the release date; defaults to time.Now.
	Now    func() time.Time
	Logger *log.Logger
}

// Build packages the extension and returns the archive path.
func (p *Packager) Build(ctx context.Context) (archivePath string, err error) {
	logger := logging.OrDiscard(p.Logger)
	staging := p.Project.Staging()

	defer func() {
		if rmErr := fsutil.Remove(staging); rmErr != nil {
			logger.Warn("could not remove staging tree", "dir", staging, "err", rmErr)
		}
	}()

	ext, err := manifest.LoadExtension(p.Project.Dir)
	if err != nil {
		return "", err
	}
	pkg, err := manifest.LoadPackage(p.Project.Dir)
	if err != nil {
		return "", err
	}

	if err := p.prepareAssets(ctx, ext, logger); err != nil {
		return "", err
	}
	if err := p.runScripts(ctx, ext, logger); err != nil {
		return "", err
	}

	name := ext.ArchiveName(pkg.Version)
	target := p.Project.Archive(name)

	if err := os.MkdirAll(p.Project.Build(), 0o755); err != nil {
		return "", fmt.Errorf("creating build directory: %w", err)
	}
	if err := fsutil.RemoveAll(staging, target); err != nil {
		return "", err
	}

	if err := p.stage(ctx, ext, logger); err != nil {
		return "", err
	}

	now := p.now().UTC()
	m := manifest.New(ext, pkg, now)
	data, err := m.Marshal()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(staging, manifest.ManifestFile), data, 0o644); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}

	releaseDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	logger.Info("writing archive", "file", name)
	if err := archive.Write(staging, target, releaseDay); err != nil {
		return "", err
	}

	logger.Info("package has been built", "file", target)
	return target, nil
}

// prepareAssets clears previous library output and, for bundled
// extensions, the transpile output, then produces the bundled chunks.
func (p *Packager) prepareAssets(ctx context.Context, ext *manifest.ExtensionParams, logger *log.Logger) error {
	lib := p.Project.Lib()

	if !ext.Bundled {
		return fsutil.Remove(lib)
	}
	if p.Bundler == nil {
		return bundler.ErrNotConfigured
	}

	if err := fsutil.RemoveAll(p.Project.TranspiledCustom(), lib); err != nil {
		return err
	}

	logger.Info("bundling frontend", "module", ext.ModuleID())
	transpiled, err := filepath.Rel(p.Project.Dir, p.Project.Transpiled())
	if err != nil {
		return fmt.Errorf("resolving transpile output: %w", err)
	}
	cfg := bundler.ModuleConfig(ext.ModuleID(), filepath.ToSlash(transpiled))
	out, err := p.Bundler.Build(ctx, cfg)
	if err != nil {
		return fmt.Errorf("bundling: %w", err)
	}

	if err := os.MkdirAll(lib, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", lib, err)
	}
	for _, chunk := range cfg.ChunkOrder {
		path := filepath.Join(lib, chunk+".js")
		if err := os.WriteFile(path, []byte(out.Chunks[chunk]), 0o644); err != nil {
			return fmt.Errorf("writing chunk %s: %w", chunk, err)
		}
	}
	if err := os.WriteFile(filepath.Join(lib, "templates.tpl"), []byte(out.Templates), 0o644); err != nil {
		return fmt.Errorf("writing templates: %w", err)
	}
	return nil
}

func (p *Packager) runScripts(ctx context.Context, ext *manifest.ExtensionParams, logger *log.Logger) error {
	if len(ext.Scripts) == 0 {
		return nil
	}
	if p.Scripts == nil {
		return fmt.Errorf("extension declares build scripts but no script runner is set")
	}
	for i, script := range ext.Scripts {
		logger.Info("running build script", "n", i+1)
		if err := p.Scripts.RunScript(ctx, p.Project.Dir, script); err != nil {
			return fmt.Errorf("build script %d: %w", i+1, err)
		}
	}
	return nil
}

// stage fills build/tmp with the package contents.
func (p *Packager) stage(ctx context.Context, ext *manifest.ExtensionParams, logger *log.Logger) error {
	staging := p.Project.Staging()
	logger.Debug("staging sources", "dir", staging)
	if err := fsutil.CopyDir(p.Project.Src(), staging, nil); err != nil {
		return fmt.Errorf("staging sources: %w", err)
	}

	files := p.Project.StagedFiles()
	if ext.Bundled {
		frontend := files.Frontend(ext.ModuleID())
		if err := fsutil.CopyDir(p.Project.Lib(), filepath.Join(frontend, "lib"), nil); err != nil {
			return fmt.Errorf("staging bundled library: %w", err)
		}
		if err := fsutil.Remove(filepath.Join(frontend, "src")); err != nil {
			return err
		}
	}

	backend := files.Backend(ext.Module)
	if p.Composer != nil {
		if err := p.Composer.Install(ctx, backend, false); err != nil {
			return err
		}
	}
	if err := composer.StripArtifacts(backend); err != nil {
		return err
	}

	stripped, err := stripMatches(staging, ext.Strip)
	if err != nil {
		return err
	}
	if len(stripped) > 0 {
		logger.Debug("stripped staged paths", "paths", stripped)
	}

	if p.Hook != nil {
		if err := p.Hook(ctx, staging); err != nil {
			return fmt.Errorf("build hook: %w", err)
		}
	}
	return nil
}

func (p *Packager) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
