package emu

import "errors"

var (
	ErrMemoryFault        = errors.New("memory fault")
	ErrIllegalInstruction = errors.New("illegal instruction")
	ErrStepLimit          = errors.New("instruction limit reached")
	ErrProgramTooLarge    = errors.New("program does not fit in memory")
)
