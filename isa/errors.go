package isa

import "errors"

var (
	ErrUnknownRegister    = errors.New("unknown register")
	ErrUnknownInstruction = errors.New("unknown instruction")
)
