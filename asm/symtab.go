package asm

import "fmt"

// Symbol binds a label to the byte address of the instruction that follows
// it.
type Symbol struct {
	Name    string
	Address uint32
}

// SymbolTable holds the labels of one assembly run.
type SymbolTable struct {
	addresses map[string]uint32
	order     []string
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		addresses: make(map[string]uint32),
	}
}

// Define binds name to address. Redefining a name rebinds it and returns
// ErrDuplicateLabel so that the caller can decide whether that is fatal.
func (st *SymbolTable) Define(name string, address uint32) error {
	if address%4 != 0 {
		panic(fmt.Sprintf("label %s at unaligned address 0x%x", name, address))
	}

	_, exists := st.addresses[name]
	st.addresses[name] = address

	if exists {
		return fmt.Errorf("%w: %s", ErrDuplicateLabel, name)
	}

	st.order = append(st.order, name)

	return nil
}

// Lookup returns the address of a label.
func (st *SymbolTable) Lookup(name string) (uint32, bool) {
	if st == nil {
		return 0, false
	}

	address, ok := st.addresses[name]

	return address, ok
}

// Len returns the number of distinct labels.
func (st *SymbolTable) Len() int {
	if st == nil {
		return 0
	}

	return len(st.order)
}

// Symbols lists the labels in order of first definition.
func (st *SymbolTable) Symbols() []Symbol {
	if st == nil {
		return nil
	}

	out := make([]Symbol, 0, len(st.order))
	for _, name := range st.order {
		out = append(out, Symbol{Name: name, Address: st.addresses[name]})
	}

	return out
}
