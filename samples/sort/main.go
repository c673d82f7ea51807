package main

import (
	_ "embed"
	"fmt"
	"math/rand"
	"strings"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/mipsasm/config"
	"github.com/sarchlab/mipsasm/isa"
)

//go:embed sort.asm
var source string

const (
	length = 16
	base   = 0x1000
)

func main() {
	cfg := config.Default()

	words, err := cfg.AssemblerBuilder().Build().Assemble(strings.Split(source, "\n"))
	if err != nil {
		panic(err)
	}

	engine := sim.NewSerialEngine()
	core := cfg.EmulatorBuilder(engine).Build("Core")

	if err := core.LoadProgram(words); err != nil {
		panic(err)
	}

	minI := int32(-10)
	maxI := int32(10)
	src := make([]int32, length)
	for i := range src {
		src[i] = minI + rand.Int31n(maxI-minI+1)
		if err := core.WriteWord(uint32(base+4*i), uint32(src[i])); err != nil {
			panic(err)
		}
	}

	core.SetRegister(isa.RegA0, base)
	core.SetRegister(isa.RegA0+1, length)

	if err := core.Run(); err != nil {
		panic(err)
	}

	dst := make([]int32, length)
	for i := range dst {
		w, err := core.ReadWord(uint32(base + 4*i))
		if err != nil {
			panic(err)
		}
		dst[i] = int32(w)
	}

	fmt.Println(src)
	fmt.Println(dst)
	fmt.Printf("%d instructions\n", core.Retired())

	atexit.Exit(0)
}
