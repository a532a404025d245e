// Package config resolves the project configuration. It reads the required
// config-default.json, deep-merges the optional config.json over it and
// applies EXTBUILD_<SECTION>_<KEY> environment overrides. Both files may
// contain comments.
package config
