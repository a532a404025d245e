package pipeline

import "fmt"

// Kind identifies a pipeline. Its value doubles as the command and legacy
// flag name.
type Kind string

const (
	KindFull            Kind = "all"
	KindInstall         Kind = "install"
	KindFetch           Kind = "fetch"
	KindCopy            Kind = "copy"
	KindPackage         Kind = "extension"
	KindRebuild         Kind = "rebuild"
	KindAfterInstall    Kind = "after-install"
	KindComposerInstall Kind = "composer-install"
)

// Kinds lists every pipeline in presentation order.
func Kinds() []Kind {
	return []Kind{
		KindFull,
		KindInstall,
		KindFetch,
		KindCopy,
		KindPackage,
		KindRebuild,
		KindAfterInstall,
		KindComposerInstall,
	}
}

// Describe returns a one-line summary of a pipeline.
func (k Kind) Describe() string {
	switch k {
	case KindFull:
		return "Fetch, install and configure the host, then copy the extension into it"
	case KindInstall:
		return "Install the fetched host and the extensions in extensions/"
	case KindFetch:
		return "Download the host release into site/"
	case KindCopy:
		return "Copy the extension sources into site/"
	case KindPackage:
		return "Build the distributable extension archive"
	case KindRebuild:
		return "Run the host rebuild script"
	case KindAfterInstall:
		return "Run php_scripts/after_install.php"
	case KindComposerInstall:
		return "Install composer dependencies of the module in site/"
	}
	return ""
}

// Command selects one pipeline.
type Command interface {
	Kind() Kind
	command()
}

// Full runs the complete environment setup.
type Full struct {
	// Branch overrides the configured host branch when set.
	Branch string
}

// InstallOnly installs an already fetched host.
type InstallOnly struct{}

// FetchOnly downloads the host release.
type FetchOnly struct {
	Branch string
}

// CopyOnly copies the extension into the host.
type CopyOnly struct {
	// File, when set, copies a single file relative to src/files.
	File string
}

// Package builds the extension archive.
type Package struct{}

// Rebuild runs the host rebuild script.
type Rebuild struct{}

// AfterInstall runs the after-install hook.
type AfterInstall struct{}

// ComposerInstall installs the module's dependencies in the host.
type ComposerInstall struct{}

func (Full) Kind() Kind            { return KindFull }
func (InstallOnly) Kind() Kind     { return KindInstall }
func (FetchOnly) Kind() Kind       { return KindFetch }
func (CopyOnly) Kind() Kind        { return KindCopy }
func (Package) Kind() Kind         { return KindPackage }
func (Rebuild) Kind() Kind         { return KindRebuild }
func (AfterInstall) Kind() Kind    { return KindAfterInstall }
func (ComposerInstall) Kind() Kind { return KindComposerInstall }

func (Full) command()            {}
func (InstallOnly) command()     {}
func (FetchOnly) command()       {}
func (CopyOnly) command()        {}
func (Package) command()         {}
func (Rebuild) command()         {}
func (AfterInstall) command()    {}
func (ComposerInstall) command() {}

// Params carries the optional parameters of the legacy flag interface.
type Params struct {
	Branch string
	File   string
}

// NewCommand builds the Command for kind. Parameters a pipeline does not
// take are ignored.
func NewCommand(kind Kind, params Params) (Command, error) {
	switch kind {
	case KindFull:
		return Full{Branch: params.Branch}, nil
	case KindInstall:
		return InstallOnly{}, nil
	case KindFetch:
		return FetchOnly{Branch: params.Branch}, nil
	case KindCopy:
		return CopyOnly{File: params.File}, nil
	case KindPackage:
		return Package{}, nil
	case KindRebuild:
		return Rebuild{}, nil
	case KindAfterInstall:
		return AfterInstall{}, nil
	case KindComposerInstall:
		return ComposerInstall{}, nil
	}
	return nil, &UsageError{Msg: fmt.Sprintf("unknown pipeline %q", string(kind))}
}
