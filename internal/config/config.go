package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/extkit/extbuild/internal/branding"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
)

const (
	// DefaultFile is the required configuration file.
	DefaultFile = "config-default.json"
	// LocalFile is the optional local override.
	LocalFile = "config.json"

	fileType = "json"
)

// Config is the merged project configuration.
type Config struct {
	Host     Host     `mapstructure:"host" yaml:"host"`
	Database Database `mapstructure:"database" yaml:"database"`
	Install  Install  `mapstructure:"install" yaml:"install"`
	Tools    Tools    `mapstructure:"tools" yaml:"tools"`
	Bundler  Bundler  `mapstructure:"bundler" yaml:"bundler"`
}

// Host locates the host application releases.
type Host struct {
	Repository string `mapstructure:"repository" yaml:"repository"`
	Branch     string `mapstructure:"branch" yaml:"branch"`
	// Mirror, when set, replaces https://github.com in download URLs.
	Mirror string `mapstructure:"mirror" yaml:"mirror,omitempty"`
}

// Database holds the connection settings written into the host config.
type Database struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port,omitempty"`
	DBName   string `mapstructure:"dbname" yaml:"dbname"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Charset  string `mapstructure:"charset" yaml:"charset,omitempty"`
	Platform string `mapstructure:"platform" yaml:"platform"`
}

// Install holds the answers fed to the host installer.
type Install struct {
	Language      string `mapstructure:"language" yaml:"language"`
	SiteURL       string `mapstructure:"siteurl" yaml:"siteUrl"`
	DefaultOwner  string `mapstructure:"defaultowner" yaml:"defaultOwner"`
	DefaultGroup  string `mapstructure:"defaultgroup" yaml:"defaultGroup"`
	AdminUsername string `mapstructure:"adminusername" yaml:"adminUsername"`
	AdminPassword string `mapstructure:"adminpassword" yaml:"adminPassword"`
}

// Tools names the external executables.
type Tools struct {
	PHP      string `mapstructure:"php" yaml:"php"`
	Composer string `mapstructure:"composer" yaml:"composer"`
	NPM      string `mapstructure:"npm" yaml:"npm"`
	Grunt    string `mapstructure:"grunt" yaml:"grunt"`
	Chown    string `mapstructure:"chown" yaml:"chown"`
}

// Bundler configures the external asset bundler.
type Bundler struct {
	Command []string `mapstructure:"command" yaml:"command,omitempty"`
}

// Default returns the built-in values applied beneath config-default.json.
func Default() Config {
	return Config{
		Host: Host{Branch: "master"},
		Database: Database{
			Host:     "localhost",
			Platform: "Mysql",
		},
		Install: Install{Language: "en_US"},
		Tools: Tools{
			PHP:      "php",
			Composer: "composer",
			NPM:      "npm",
			Grunt:    "grunt",
			Chown:    "chown",
		},
	}
}

// Load resolves the configuration of the project in dir.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigType(fileType)
	setDefaults(v, Default())

	defaultPath := filepath.Join(dir, DefaultFile)
	if err := mergeFile(v, defaultPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s not found in %s", DefaultFile, dir)
		}
		return nil, err
	}

	localPath := filepath.Join(dir, LocalFile)
	if err := mergeFile(v, localPath); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	// Older projects name the host section after the host application.
	if cfg.Host.Repository == "" {
		cfg.Host.Repository = v.GetString("espocrm.repository")
		if b := v.GetString("espocrm.branch"); b != "" && !v.InConfig("host.branch") {
			cfg.Host.Branch = b
		}
	}

	return &cfg, nil
}

// mergeFile merges one JSONC file into v. A missing file is reported with
// an error satisfying os.IsNotExist.
func mergeFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := v.MergeConfig(bytes.NewReader(jsonc.ToJSON(data))); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// setDefaults registers every field of d so environment overrides apply even
// to keys absent from both files.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("host.repository", d.Host.Repository)
	v.SetDefault("host.branch", d.Host.Branch)
	v.SetDefault("host.mirror", d.Host.Mirror)
	v.SetDefault("database.host", d.Database.Host)
	v.SetDefault("database.port", d.Database.Port)
	v.SetDefault("database.dbname", d.Database.DBName)
	v.SetDefault("database.user", d.Database.User)
	v.SetDefault("database.password", d.Database.Password)
	v.SetDefault("database.charset", d.Database.Charset)
	v.SetDefault("database.platform", d.Database.Platform)
	v.SetDefault("install.language", d.Install.Language)
	v.SetDefault("install.siteurl", d.Install.SiteURL)
	v.SetDefault("install.defaultowner", d.Install.DefaultOwner)
	v.SetDefault("install.defaultgroup", d.Install.DefaultGroup)
	v.SetDefault("install.adminusername", d.Install.AdminUsername)
	v.SetDefault("install.adminpassword", d.Install.AdminPassword)
	v.SetDefault("tools.php", d.Tools.PHP)
	v.SetDefault("tools.composer", d.Tools.Composer)
	v.SetDefault("tools.npm", d.Tools.NPM)
	v.SetDefault("tools.grunt", d.Tools.Grunt)
	v.SetDefault("tools.chown", d.Tools.Chown)
	v.SetDefault("bundler.command", d.Bundler.Command)
}
