package runtime

import "errors"

// Execution-time error kinds. All but ErrTimeout are recoverable: the
// failing command logs an error line and the run continues on the next
// line.
var (
	ErrInvalidLabel       = errors.New("invalid label")
	ErrInvalidLineNumber  = errors.New("invalid line number")
	ErrReturnWithoutGosub = errors.New("RETURN without GOSUB")
	ErrNextWithoutFor     = errors.New("NEXT without FOR")
	ErrOutOfData          = errors.New("READ out of DATA")
	ErrMalformedBlock     = errors.New("malformed block")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrTimeout            = errors.New("execution time limit exceeded")
)
