// Package pipeline selects and runs the build pipelines. A Command names
// exactly one pipeline and carries only that pipeline's parameters; Plan
// turns it into a fixed, ordered list of stages and Run executes them one
// at a time, stopping at the first failure. Completed stages are never
// rolled back; stages are idempotent instead.
package pipeline
