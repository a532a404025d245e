package host

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/extkit/extbuild/internal/config"
	"github.com/extkit/extbuild/internal/fsutil"
	"github.com/extkit/extbuild/internal/gateway"
	"github.com/extkit/extbuild/internal/layout"
	"github.com/extkit/extbuild/internal/logging"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func init() {
	_ = message.Set(language.English, "installed %d extensions",
		plural.Selectf(1, "",
			plural.One, "installed 1 extension",
			plural.Other, "installed %d extensions"))
}

// Installer drives the host application of one project.
type Installer struct {
	Runner  gateway.Runner
	Config  *config.Config
	Project layout.Project
	Logger  *log.Logger
}

// action is one host installer step.
type action struct {
	name  string
	query [][2]string
	quiet bool
}

func (a action) args() []string {
	args := []string{"install/cli.php", "-a", a.name}
	if len(a.query) > 0 {
		parts := make([]string, len(a.query))
		for i, kv := range a.query {
			parts[i] = kv[0] + "=" + url.QueryEscape(kv[1])
		}
		args = append(args, "-d", strings.Join(parts, "&"))
	}
	return args
}

func (i *Installer) actions() []action {
	db := i.Config.Database
	in := i.Config.Install
	platform := db.Platform
	if platform == "" {
		platform = "Mysql"
	}
	return []action{
		{name: "step1", query: [][2]string{{"user-lang", in.Language}}},
		{name: "setupConfirmation", query: [][2]string{
			{"host-name", db.Host},
			{"db-name", db.DBName},
			{"db-platform", platform},
			{"db-user-name", db.User},
			{"db-user-password", db.Password},
		}},
		{name: "checkPermission", quiet: true},
		{name: "saveSettings", query: [][2]string{
			{"site-url", in.SiteURL},
			{"default-permissions-user", in.DefaultOwner},
			{"default-permissions-group", in.DefaultGroup},
		}},
		{name: "buildDatabase", quiet: true},
		{name: "createUser", query: [][2]string{
			{"user-name", in.AdminUsername},
			{"user-pass", in.AdminPassword},
		}},
		{name: "finish"},
	}
}

// Install configures, builds and installs the host in site/, then merges
// the project's configuration overrides.
func (i *Installer) Install(ctx context.Context) error {
	site := i.Project.Site()
	logger := logging.OrDiscard(i.Logger)

	logger.Info("creating config")
	if err := WriteConfig(site, i.Config.Database); err != nil {
		return err
	}

	logger.Info("installing frontend dependencies")
	if err := i.run(ctx, i.Config.Tools.NPM, site, true, "ci"); err != nil {
		return err
	}
	logger.Info("building host frontend")
	if err := i.run(ctx, i.Config.Tools.Grunt, site, true); err != nil {
		return err
	}

	if err := fsutil.Remove(filepath.Join(site, "install", "config.php")); err != nil {
		return err
	}

	for _, a := range i.actions() {
		logger.Info("install", "action", a.name)
		if err := i.run(ctx, i.Config.Tools.PHP, site, a.quiet, a.args()...); err != nil {
			return fmt.Errorf("install action %s: %w", a.name, err)
		}
	}

	logger.Info("merging configs")
	return i.run(ctx, i.Config.Tools.PHP, i.Project.PHPScripts(), false, "merge_configs.php")
}

// InstallExtensions installs every zip archive found in extensions/. A
// missing directory installs nothing.
func (i *Installer) InstallExtensions(ctx context.Context) error {
	logger := logging.OrDiscard(i.Logger)

	entries, err := os.ReadDir(i.Project.Extensions())
	if os.IsNotExist(err) {
		logger.Debug("no extensions directory")
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading extensions directory: %w", err)
	}

	var archives []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".zip") {
			continue
		}
		archives = append(archives, e.Name())
	}
	sort.Strings(archives)

	for _, name := range archives {
		logger.Info("installing extension", "file", name)
		path, err := filepath.Abs(filepath.Join(i.Project.Extensions(), name))
		if err != nil {
			return fmt.Errorf("resolving %s: %w", name, err)
		}
		if err := i.run(ctx, i.Config.Tools.PHP, i.Project.Site(), true,
			"command.php", "extension", "--file="+path); err != nil {
			return fmt.Errorf("installing extension %s: %w", name, err)
		}
	}

	logger.Info(printer.Sprintf("installed %d extensions", len(archives)))
	return nil
}

// Rebuild runs the host rebuild script.
func (i *Installer) Rebuild(ctx context.Context) error {
	logging.OrDiscard(i.Logger).Info("rebuilding host")
	return i.run(ctx, i.Config.Tools.PHP, i.Project.Site(), false, "rebuild.php")
}

// AfterInstall runs the project's after-install hook.
func (i *Installer) AfterInstall(ctx context.Context) error {
	logging.OrDiscard(i.Logger).Info("running after-install script")
	return i.run(ctx, i.Config.Tools.PHP, i.Project.PHPScripts(), false, "after_install.php")
}

// SetOwner hands the host tree to the configured owner and group. Failure
// is logged and otherwise ignored.
func (i *Installer) SetOwner(ctx context.Context) error {
	logger := logging.OrDiscard(i.Logger)
	in := i.Config.Install
	if in.DefaultOwner == "" || in.DefaultGroup == "" {
		logger.Debug("owner or group not configured, skipping chown")
		return nil
	}

	owner := in.DefaultOwner + ":" + in.DefaultGroup
	if err := i.run(ctx, i.Config.Tools.Chown, i.Project.Site(), true, "-R", owner, "."); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("could not set ownership", "owner", owner, "err", err)
	}
	return nil
}

func (i *Installer) run(ctx context.Context, name, dir string, quiet bool, args ...string) error {
	return i.Runner.Run(ctx, gateway.Cmd{Name: name, Args: args, Dir: dir, Quiet: quiet})
}
