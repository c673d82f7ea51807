package emu

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/mipsasm/asm"
	"github.com/sarchlab/mipsasm/isa"
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), asm.LevelTrace, msg, args...)
}

const registersPerRow = 4

// DumpRegisters writes the register file as a table, four registers per row.
func (c *Core) DumpRegisters(w io.Writer, style table.Style) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(style)
	t.SetTitle(fmt.Sprintf("%s  pc=0x%08x  retired=%d", c.Name(), c.state.PC, c.state.Retired))

	header := table.Row{}
	for col := 0; col < registersPerRow; col++ {
		header = append(header, "Reg", "Value")
	}
	t.AppendHeader(header)

	for row := 0; row < isa.NumRegisters/registersPerRow; row++ {
		r := table.Row{}
		for col := 0; col < registersPerRow; col++ {
			index := uint8(row*registersPerRow + col)
			r = append(r,
				isa.RegisterName(index),
				fmt.Sprintf("0x%08x", c.state.Registers[index]),
			)
		}
		t.AppendRow(r)
	}

	t.Render()
}
