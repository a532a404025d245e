package pipeline

import (
	"context"
	"fmt"
)

// Stage names.
const (
	StageFetchHost         = "fetch-host"
	StageInstallHost       = "install-host"
	StageInstallExtensions = "install-extensions"
	StageCopyExtension     = "copy-extension"
	StageComposerInstall   = "composer-install"
	StageRebuild           = "rebuild"
	StageAfterInstall      = "after-install"
	StageSetOwner          = "set-owner"
	StageBuildPackage      = "build-package"
)

// Stage is one step of a pipeline. Stages communicate only through the
// filesystem.
type Stage struct {
	Name string
	Run  func(ctx context.Context) error
}

// Pipeline is an ordered list of stages.
type Pipeline struct {
	Kind   Kind
	Stages []Stage
}

// Names returns the stage names in order.
func (p Pipeline) Names() []string {
	names := make([]string, len(p.Stages))
	for i, s := range p.Stages {
		names[i] = s.Name
	}
	return names
}

// Stages is the set of operations pipelines are assembled from.
type Stages interface {
	FetchHost(ctx context.Context, branch string) error
	InstallHost(ctx context.Context) error
	InstallExtensions(ctx context.Context) error
	CopyExtension(ctx context.Context, file string) error
	InstallDependencies(ctx context.Context) error
	Rebuild(ctx context.Context) error
	AfterInstall(ctx context.Context) error
	SetOwner(ctx context.Context) error
	BuildPackage(ctx context.Context) error
}

// Plan assembles the pipeline selected by cmd.
func Plan(cmd Command, s Stages) (Pipeline, error) {
	fetch := func(branch string) Stage {
		return Stage{StageFetchHost, func(ctx context.Context) error { return s.FetchHost(ctx, branch) }}
	}
	copyExt := func(file string) Stage {
		return Stage{StageCopyExtension, func(ctx context.Context) error { return s.CopyExtension(ctx, file) }}
	}
	var (
		installHost  = Stage{StageInstallHost, s.InstallHost}
		installExts  = Stage{StageInstallExtensions, s.InstallExtensions}
		composer     = Stage{StageComposerInstall, s.InstallDependencies}
		rebuild      = Stage{StageRebuild, s.Rebuild}
		afterInstall = Stage{StageAfterInstall, s.AfterInstall}
		setOwner     = Stage{StageSetOwner, s.SetOwner}
		buildPackage = Stage{StageBuildPackage, s.BuildPackage}
	)

	var stages []Stage
	switch c := cmd.(type) {
	case Full:
		stages = []Stage{fetch(c.Branch), installHost, installExts, copyExt(""), composer, rebuild, afterInstall, setOwner}
	case InstallOnly:
		stages = []Stage{installHost, installExts, setOwner}
	case FetchOnly:
		stages = []Stage{fetch(c.Branch)}
	case CopyOnly:
		stages = []Stage{copyExt(c.File), setOwner}
	case Package:
		stages = []Stage{buildPackage}
	case Rebuild:
		stages = []Stage{rebuild}
	case AfterInstall:
		stages = []Stage{afterInstall}
	case ComposerInstall:
		stages = []Stage{composer}
	default:
		return Pipeline{}, &UsageError{Msg: fmt.Sprintf("unsupported command %T", cmd)}
	}

	return Pipeline{Kind: cmd.Kind(), Stages: stages}, nil
}
