package asm

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedOperand = errors.New("malformed operand")
	ErrUndefinedLabel   = errors.New("undefined label")
	ErrDuplicateLabel   = errors.New("duplicate label")
	ErrOutOfRange       = errors.New("value out of range")
	ErrMisalignedTarget = errors.New("target not word aligned")
)

// LineError reports the source line on which assembly stopped.
type LineError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
