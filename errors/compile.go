package errors

import (
	"errors"
	"fmt"
)

// CompileError is a hard failure of a compile run: the directory or a file
// could not be read, or a file is not well-formed XML.
type CompileError struct {
	Err  error
	Code ErrorCode
	Path string
}

func (e *CompileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %v", e.Code, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Path, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// NewCompileError wraps err with a code and the offending path.
func NewCompileError(code ErrorCode, path string, err error) *CompileError {
	return &CompileError{Code: code, Path: path, Err: err}
}

// CompileCode returns the code of the first CompileError in err's chain.
func CompileCode(err error) (ErrorCode, bool) {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce.Code, true
	}
	return "", false
}
