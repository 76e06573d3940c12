package shift

import "errors"

var (
	ErrShiftNotFound = errors.New("shift not found")
	ErrShiftOverlap  = errors.New("shift overlaps another shift of this employee")
)
