package loan

import "errors"

var (
	ErrNotFound         = errors.New("loan not found")
	ErrNotRequested     = errors.New("only requested loans can be approved")
	ErrCancelNotAllowed = errors.New("loan cannot be cancelled in its current state")
)
