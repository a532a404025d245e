package pipeline

import "fmt"

// UsageError reports an invalid pipeline selection. Nothing has run when it
// is returned.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// StageError reports the stage that aborted a pipeline.
type StageError struct {
	Pipeline Kind
	Stage    string
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: stage %s: %v", e.Pipeline, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
