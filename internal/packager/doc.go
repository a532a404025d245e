// Package packager builds the distributable extension archive. It bundles
// frontend assets when the extension is bundled, stages src/ under
// build/tmp, installs production PHP dependencies into the staged module,
// writes manifest.json and zips the staged tree into
// build/<package>-<version>.zip. The staging tree is always removed.
package packager
