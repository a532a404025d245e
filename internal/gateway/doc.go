// Package gateway runs the external tools the build pipelines depend on
// (php, composer, npm, grunt, chown, the asset bundler). Every invocation is
// a single blocking command in a working directory; a failing command
// surfaces as a *ToolError carrying the captured output. Auxiliary build
// scripts are interpreted in-process by ShellRunner.
package gateway
