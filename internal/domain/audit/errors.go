package audit

import "errors"

var (
	ErrProjectExists    = errors.New("project name already exists")
	ErrProjectNameEmpty = errors.New("project name cannot be empty")
	ErrRunExists        = errors.New("run already exists")
	ErrRunNotFound      = errors.New("run not found")
	ErrRunCompleted     = errors.New("run already completed")
	ErrRunBusy          = errors.New("run is already being executed")
	ErrEmptyScope       = errors.New("at least one compliance framework is required")
	ErrUnknownFramework = errors.New("unknown compliance framework")
	ErrFindingNotFound  = errors.New("finding not found")
	ErrInvalidAnswer    = errors.New("answer must be one of Yes, No, Partial, N/A")
	ErrQuestionNumber   = errors.New("question numbers must be positive integers separated by commas")
)
