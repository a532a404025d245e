package stages

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/extkit/extbuild/internal/bundler"
	"github.com/extkit/extbuild/internal/composer"
	"github.com/extkit/extbuild/internal/config"
	"github.com/extkit/extbuild/internal/fsutil"
	"github.com/extkit/extbuild/internal/gateway"
	"github.com/extkit/extbuild/internal/host"
	"github.com/extkit/extbuild/internal/layout"
	"github.com/extkit/extbuild/internal/logging"
	"github.com/extkit/extbuild/internal/manifest"
	"github.com/extkit/extbuild/internal/migrate"
	"github.com/extkit/extbuild/internal/packager"
	"github.com/extkit/extbuild/internal/pipeline"
	"github.com/extkit/extbuild/internal/release"
)

// Fetcher downloads a host release into a site directory.
type Fetcher interface {
	Fetch(ctx context.Context, repository, branch, siteDir string) error
}

// Workspace runs stages for one project.
type Workspace struct {
	Project  layout.Project
	Config   *config.Config
	Host     *host.Installer
	Fetcher  Fetcher
	Composer *composer.Installer
	Bundler  bundler.Bundler
	Packager *packager.Packager
	Logger   *log.Logger
}

var _ pipeline.Stages = (*Workspace)(nil)

// Options tune New.
type Options struct {
	Runner     gateway.Runner
	Scripts    packager.ScriptRunner
	HTTPClient *http.Client
	// Progress receives the host download progress.
	Progress io.Writer
	Logger   *log.Logger
}

// New wires a Workspace for the project in dir.
func New(dir string, cfg *config.Config, opts Options) *Workspace {
	logger := logging.OrDiscard(opts.Logger)
	runner := opts.Runner
	if runner == nil {
		runner = gateway.NewExecRunner()
	}
	scripts := opts.Scripts
	if scripts == nil {
		scripts = &gateway.ShellRunner{}
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	project := layout.New(dir)
	comp := &composer.Installer{Runner: runner, Binary: cfg.Tools.Composer, Logger: logger}
	var bnd bundler.Bundler
	if len(cfg.Bundler.Command) > 0 {
		bnd = &bundler.External{Runner: runner, Command: cfg.Bundler.Command, Dir: dir}
	}

	fetcher := release.New(
		release.WithHTTPClient(httpClient),
		release.WithMirror(cfg.Host.Mirror),
		release.WithProgress(opts.Progress),
		release.WithMigrator(migrate.New(migrate.WithLogger(logger))),
		release.WithLogger(logger),
	)

	return &Workspace{
		Project:  project,
		Config:   cfg,
		Host:     &host.Installer{Runner: runner, Config: cfg, Project: project, Logger: logger},
		Fetcher:  fetcher,
		Composer: comp,
		Bundler:  bnd,
		Packager: &packager.Packager{
			Project:  project,
			Bundler:  bnd,
			Composer: comp,
			Scripts:  scripts,
			Logger:   logger,
		},
		Logger: logger,
	}
}

// FetchHost downloads the host release; an empty branch means the
// configured one.
func (w *Workspace) FetchHost(ctx context.Context, branch string) error {
	if branch == "" {
		branch = w.Config.Host.Branch
	}
	return w.Fetcher.Fetch(ctx, w.Config.Host.Repository, branch, w.Project.Site())
}

// InstallHost installs the fetched host.
func (w *Workspace) InstallHost(ctx context.Context) error {
	return w.Host.Install(ctx)
}

// InstallExtensions installs the archives in extensions/.
func (w *Workspace) InstallExtensions(ctx context.Context) error {
	return w.Host.InstallExtensions(ctx)
}

// Rebuild runs the host rebuild script.
func (w *Workspace) Rebuild(ctx context.Context) error {
	return w.Host.Rebuild(ctx)
}

// AfterInstall runs the after-install hook.
func (w *Workspace) AfterInstall(ctx context.Context) error {
	return w.Host.AfterInstall(ctx)
}

// SetOwner normalizes ownership of site/.
func (w *Workspace) SetOwner(ctx context.Context) error {
	return w.Host.SetOwner(ctx)
}

// InstallDependencies installs the module's composer dependencies,
// including dev dependencies, inside site/.
func (w *Workspace) InstallDependencies(ctx context.Context) error {
	ext, err := manifest.LoadExtension(w.Project.Dir)
	if err != nil {
		return err
	}
	return w.Composer.Install(ctx, w.Project.SiteTree().Backend(ext.Module), true)
}

// BuildPackage builds the extension archive.
func (w *Workspace) BuildPackage(ctx context.Context) error {
	_, err := w.Packager.Build(ctx)
	return err
}

// CopyExtension copies the extension into site/. A non-empty file copies
// only that file, relative to src/files.
func (w *Workspace) CopyExtension(ctx context.Context, file string) error {
	if file != "" {
		return w.copyFile(ctx, file)
	}

	ext, err := manifest.LoadExtension(w.Project.Dir)
	if err != nil {
		return err
	}
	id := ext.ModuleID()
	site := w.Project.SiteTree()

	if ext.Bundled {
		if err := w.transpile(ctx, id, ""); err != nil {
			return err
		}
	}

	w.Logger.Info("removing previous module files")
	if err := fsutil.RemoveAll(site.Backend(ext.Module), site.Frontend(id)); err != nil {
		return err
	}

	transpiled := filepath.Join(w.Project.TranspiledCustom(), "modules", id, "src")
	if ext.Bundled && fsutil.IsDir(transpiled) {
		dst := filepath.Join(site.Frontend(id), "lib", "transpiled", "src")
		if err := fsutil.CopyDir(transpiled, dst, nil); err != nil {
			return fmt.Errorf("copying transpiled sources: %w", err)
		}
	}

	if err := fsutil.RemoveAll(site.UnitTests(ext.Module), site.IntegrationTests(ext.Module)); err != nil {
		return err
	}

	w.Logger.Info("copying files")
	if err := fsutil.CopyDir(w.Project.SrcFiles(), w.Project.Site(), nil); err != nil {
		return fmt.Errorf("copying extension files: %w", err)
	}
	if fsutil.IsDir(w.Project.Tests()) {
		if err := fsutil.CopyDir(w.Project.Tests(), filepath.Join(w.Project.Site(), "tests"), nil); err != nil {
			return fmt.Errorf("copying tests: %w", err)
		}
	}
	return nil
}

// transpile runs the bundler without chunks. A non-empty file, relative to
// src/files, limits it to that source.
func (w *Workspace) transpile(ctx context.Context, moduleID, file string) error {
	if w.Bundler == nil {
		return bundler.ErrNotConfigured
	}
	if file == "" {
		if err := fsutil.Remove(w.Project.TranspiledCustom()); err != nil {
			return err
		}
	}

	w.Logger.Info("transpiling", "module", moduleID)
	dest, err := filepath.Rel(w.Project.Dir, w.Project.Transpiled())
	if err != nil {
		return fmt.Errorf("resolving transpile output: %w", err)
	}
	cfg := bundler.TranspileConfig(moduleID, filepath.ToSlash(dest))
	if file != "" {
		cfg.File = path.Join("src/files", file)
	}
	if _, err := w.Bundler.Build(ctx, cfg); err != nil {
		return fmt.Errorf("transpiling: %w", err)
	}
	return nil
}

// copyFile copies one file from src/files into the same place under site/.
// A frontend source of a bundled module is transpiled as well.
func (w *Workspace) copyFile(ctx context.Context, file string) error {
	rel := filepath.Clean(filepath.FromSlash(file))
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("file %q must be relative to src/files", file)
	}

	src := filepath.Join(w.Project.SrcFiles(), rel)
	dst := filepath.Join(w.Project.Site(), rel)
	w.Logger.Info("copying file", "file", filepath.ToSlash(rel))
	if err := fsutil.CopyFile(src, dst); err != nil {
		return fmt.Errorf("copying %s: %w", file, err)
	}

	ext, err := manifest.LoadExtension(w.Project.Dir)
	if err != nil {
		return err
	}
	if !ext.Bundled {
		return nil
	}
	id := ext.ModuleID()
	srcPrefix := "client/custom/modules/" + id + "/src/"
	slashed := filepath.ToSlash(rel)
	if !strings.HasPrefix(slashed, srcPrefix) {
		return nil
	}

	if err := w.transpile(ctx, id, slashed); err != nil {
		return err
	}
	sub := filepath.FromSlash(strings.TrimPrefix(slashed, srcPrefix))
	transpiled := filepath.Join(w.Project.TranspiledCustom(), "modules", id, "src", sub)
	if !fsutil.Exists(transpiled) {
		return nil
	}
	target := filepath.Join(w.Project.SiteTree().Frontend(id), "lib", "transpiled", "src", sub)
	if err := fsutil.CopyFile(transpiled, target); err != nil {
		return fmt.Errorf("copying transpiled %s: %w", file, err)
	}
	return nil
}
