package resumes

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFields is returned when a required form field is empty.
	ErrMissingFields = errors.New("please fill in all the fields")
	// ErrGeneration is returned when the model call failed or returned nothing.
	ErrGeneration = errors.New("generation failed")
	// ErrMarkerNotFound is returned when the response lacks the section marker.
	ErrMarkerNotFound = errors.New("failed to parse the generated content")
)

// Stage names the pipeline step a build stopped at.
type Stage string

const (
	StageValidate Stage = "validate"
	StageGenerate Stage = "generate"
	StageExtract  Stage = "extract"
	StageRender   Stage = "render"
)

// StageError ties a build failure to the stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf returns the stage recorded in err, or "" if err carries none.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
