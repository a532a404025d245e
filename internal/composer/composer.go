// Package composer installs PHP dependencies of a module directory.
package composer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/extkit/extbuild/internal/fsutil"
	"github.com/extkit/extbuild/internal/gateway"
	"github.com/extkit/extbuild/internal/logging"
)

// Manifest is the dependency manifest that makes a directory installable.
const Manifest = "composer.json"

// Artifacts are removed from packaged modules after installation.
var Artifacts = []string{"composer.json", "composer.lock", "composer.phar"}

// Installer runs "composer install".
type Installer struct {
	Runner gateway.Runner
	Binary string
	Logger *log.Logger
}

// Install runs composer install in dir. Dev dependencies are skipped unless
// includeDev is set. A directory without composer.json is left untouched.
func (i *Installer) Install(ctx context.Context, dir string, includeDev bool) error {
	if !fsutil.Exists(filepath.Join(dir, Manifest)) {
		i.logger().Debug("no composer.json, skipping", "dir", dir)
		return nil
	}

	args := []string{"install"}
	if !includeDev {
		args = append(args, "--no-dev")
	}
	args = append(args, "--ignore-platform-reqs")

	i.logger().Info("running composer install", "dir", dir, "dev", includeDev)
	if err := i.Runner.Run(ctx, gateway.Cmd{Name: i.binary(), Args: args, Dir: dir, Quiet: true}); err != nil {
		return fmt.Errorf("installing composer dependencies in %s: %w", dir, err)
	}
	return nil
}

// StripArtifacts removes the composer files from dir.
func StripArtifacts(dir string) error {
	paths := make([]string, len(Artifacts))
	for i, name := range Artifacts {
		paths[i] = filepath.Join(dir, name)
	}
	return fsutil.RemoveAll(paths...)
}

func (i *Installer) binary() string {
	if i.Binary != "" {
		return i.Binary
	}
	return "composer"
}

func (i *Installer) logger() *log.Logger {
	return logging.OrDiscard(i.Logger)
}
