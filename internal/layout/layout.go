// Package layout names the directories of an extension project and of the
// host-shaped trees (site/, src/files/, the staged package) inside it.
package layout

import "path/filepath"

// Project resolves paths relative to a project directory.
type Project struct {
	Dir string
}

// New returns the layout of the project rooted at dir.
func New(dir string) Project {
	return Project{Dir: dir}
}

func (p Project) path(elem ...string) string {
	return filepath.Join(append([]string{p.Dir}, elem...)...)
}

// Site is the working host installation.
func (p Project) Site() string { return p.path("site") }

// Extensions holds third-party extension archives installed into the host.
func (p Project) Extensions() string { return p.path("extensions") }

// PHPScripts holds the merge_configs.php and after_install.php hooks.
func (p Project) PHPScripts() string { return p.path("php_scripts") }

// Src is the extension source tree.
func (p Project) Src() string { return p.path("src") }

// SrcFiles mirrors the host tree.
func (p Project) SrcFiles() string { return p.path("src", "files") }

// Tests holds unit and integration tests copied into the host.
func (p Project) Tests() string { return p.path("tests") }

// Build is the build output directory.
func (p Project) Build() string { return p.path("build") }

// Staging is the packager's scratch tree.
func (p Project) Staging() string { return p.path("build", "tmp") }

// Lib receives the bundled chunks and templates.
func (p Project) Lib() string { return p.path("build", "assets", "lib") }

// Transpiled is the transpile output root.
func (p Project) Transpiled() string { return p.path("build", "assets", "transpiled") }

// TranspiledCustom is the transpile output area cleared before each run.
func (p Project) TranspiledCustom() string { return p.path("build", "assets", "transpiled", "custom") }

// Archive returns the path of a built archive.
func (p Project) Archive(name string) string { return p.path("build", name) }

// Tree resolves module paths inside a host-shaped tree such as site/,
// src/files/ or the staged files/ directory.
type Tree struct {
	Root string
}

// Backend is the backend module directory.
func (t Tree) Backend(module string) string {
	return filepath.Join(t.Root, "custom", "Espo", "Modules", module)
}

// Frontend is the frontend module directory.
func (t Tree) Frontend(moduleID string) string {
	return filepath.Join(t.Root, "client", "custom", "modules", moduleID)
}

// UnitTests is the module's unit test directory.
func (t Tree) UnitTests(module string) string {
	return filepath.Join(t.Root, "tests", "unit", "Espo", "Modules", module)
}

// IntegrationTests is the module's integration test directory.
func (t Tree) IntegrationTests(module string) string {
	return filepath.Join(t.Root, "tests", "integration", "Espo", "Modules", module)
}

// SiteTree is the host installation as a Tree.
func (p Project) SiteTree() Tree { return Tree{Root: p.Site()} }

// StagedFiles is the staged package's files/ directory as a Tree.
func (p Project) StagedFiles() Tree { return Tree{Root: filepath.Join(p.Staging(), "files")} }
