// Package stages implements the pipeline stages against a project
// workspace: the host installation in site/, the extension sources in src/
// and the build output in build/.
package stages
