package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/retrosim/sim68k/cpu"
	"github.com/retrosim/sim68k/emulator"
)

func main() {
	var assemble string
	var maxSteps uint64
	var dump bool
	var verbose bool

	flag.StringVar(&assemble, "a", "", ".s68 file to assemble and run")
	flag.Uint64Var(&maxSteps, "m", 1000000, "Maximum instructions to execute")
	flag.BoolVar(&dump, "d", false, "Dump registers after the run")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(assemble) == 0 {
		log.Fatalf("%v: No source file; use -a FILE", os.Args[0])
	}

	inf, err := os.Open(assemble)
	if err != nil {
		log.Fatalf("%v: %v", assemble, err)
	}
	defer inf.Close()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	err = emu.Assemble(inf)
	if err != nil {
		log.Fatalf("%v: %v", assemble, err)
	}

	steps, err := emu.Run(cpu.MaxSteps(maxSteps))
	if err != nil {
		log.Fatal(err)
	}

	if dump {
		fmt.Fprintf(os.Stderr, "%v\nsteps %v\n", emu.Cpu, steps)
	}

	if emu.Cpu.State == cpu.STATE_HALTED {
		fmt.Printf("%v\n", emu.Cpu.Result)
	}
}
