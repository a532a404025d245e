// Package fsutil holds the low-level file primitives the stages share:
// recursive copy, forgiving removal, and a no-overwrite move with a
// cross-device fallback.
package fsutil
