package api

import "github.com/sarchlab/mipsasm/asm"

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	assembler *asm.Assembler
	reporter  ProgressReporter
}

// WithAssembler sets the assembler. By default a strict one is used.
func (b DriverBuilder) WithAssembler(assembler *asm.Assembler) DriverBuilder {
	b.assembler = assembler
	return b
}

// WithReporter sets the reporter. By default runs are logged.
func (b DriverBuilder) WithReporter(reporter ProgressReporter) DriverBuilder {
	b.reporter = reporter
	return b
}

// Build creates a driver.
func (b DriverBuilder) Build() Driver {
	d := &driverImpl{
		assembler: b.assembler,
		reporter:  b.reporter,
	}

	if d.assembler == nil {
		d.assembler = asm.NewBuilder().Build()
	}

	if d.reporter == nil {
		d.reporter = LogReporter{}
	}

	return d
}
