package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/mipsasm/asm"
	"github.com/sarchlab/mipsasm/config"
	"github.com/sarchlab/mipsasm/isa"
)

//go:embed fib.asm
var source string

func main() {
	f, err := os.Create("fib.json.log")
	if err != nil {
		panic(err)
	}
	atexit.Register(func() { f.Close() })

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: asm.LevelTrace,
	})
	slog.SetDefault(slog.New(handler))

	cfg := config.Default()

	words, err := cfg.AssemblerBuilder().Build().Assemble(strings.Split(source, "\n"))
	if err != nil {
		panic(err)
	}

	for n := uint32(0); n <= 12; n++ {
		engine := sim.NewSerialEngine()
		core := cfg.EmulatorBuilder(engine).Build(fmt.Sprintf("Core%d", n))

		if err := core.LoadProgram(words); err != nil {
			panic(err)
		}
		core.SetRegister(isa.RegA0, n)

		if err := core.Run(); err != nil {
			panic(err)
		}

		fmt.Printf("fib(%d) = %d, %d instructions\n",
			n, core.Register(isa.RegV0), core.Retired())
	}

	atexit.Exit(0)
}
