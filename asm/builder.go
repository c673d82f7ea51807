package asm

// Builder can create assemblers.
type Builder struct {
	strict bool
}

// NewBuilder returns a builder for strict assemblers.
func NewBuilder() Builder {
	return Builder{
		strict: true,
	}
}

// WithStrict selects strict checking. A non-strict assembler resolves
// undefined labels to address 0, lets a later label definition replace an
// earlier one and masks out-of-range values into their fields.
func (b Builder) WithStrict(strict bool) Builder {
	b.strict = strict
	return b
}

// Build creates an assembler.
func (b Builder) Build() *Assembler {
	return &Assembler{
		strict: b.strict,
	}
}
