// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/intcode/config"
	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/driver/amplifier"
	"github.com/ezrec/intcode/driver/arcade"
	"github.com/ezrec/intcode/driver/camera"
	"github.com/ezrec/intcode/driver/gravity"
	"github.com/ezrec/intcode/driver/maze"
	"github.com/ezrec/intcode/driver/robot"
	"github.com/ezrec/intcode/emulator"
	"github.com/ezrec/intcode/io"
)

// loadProgram reads a program image, or assembles it when the file is
// assembly source.
func loadProgram(path string, verbose bool) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".s", ".asm":
		asm := &cpu.Assembler{Verbose: verbose}
		prog, err = asm.Parse(inf)
	default:
		prog, err = cpu.ParseProgram(inf)
	}

	return
}

func mustLoad(path string, verbose bool) *cpu.Program {
	prog, err := loadProgram(path, verbose)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}
	return prog
}

func main() {
	var configPath string
	var verbose bool
	conf := config.Default()

	var rootCmd = &cobra.Command{
		Use:   "intcode",
		Short: "Stored-program machine emulator, assembler and drivers",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if len(configPath) != 0 {
				var err error
				conf, err = config.Load(configPath)
				if err != nil {
					log.Fatalf("%v: %v", configPath, err)
				}
			}
			if verbose {
				conf.Machine.Verbose = true
			}
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")

	// run
	var input, output, history string
	var ascii, interactive bool
	var runCmd = &cobra.Command{
		Use:   "run PROGRAM",
		Short: "Run a program with its input and output on tapes",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			prog := mustLoad(args[0], conf.Machine.Verbose)

			emu := emulator.NewEmulator(prog)
			emu.Verbose = conf.Machine.Verbose
			emu.Machine.UnknownHalts = conf.Machine.UnknownHalts

			if interactive {
				con, err := NewConsole(ascii, history)
				if err != nil {
					log.Fatalf("console: %v", err)
				}
				defer con.Close()
				emu.Input = con
				emu.Output = con
			} else {
				tapeIn := &io.Tape{Ascii: ascii, Input: os.Stdin}
				if input != "-" {
					inf, err := os.Open(input)
					if err != nil {
						log.Fatalf("%v: %v", input, err)
					}
					defer inf.Close()
					tapeIn.Input = inf
				}

				tapeOut := &io.Tape{Ascii: ascii, Output: os.Stdout}
				if output != "-" {
					ouf, err := os.Create(output)
					if err != nil {
						log.Fatalf("%v: %v", output, err)
					}
					defer ouf.Close()
					tapeOut.Output = ouf
				}

				emu.Input = tapeIn
				emu.Output = tapeOut
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			err := emu.Run(ctx)
			if errors.Is(err, emulator.ErrInputExhausted) {
				log.Printf("%v: %v", args[0], err)
				return
			}
			if err != nil {
				log.Fatalf("%v: %v", args[0], err)
			}
			if tape, ok := emu.Input.(*io.Tape); ok && tape.Err() != nil {
				log.Fatalf("%v: %v", input, tape.Err())
			}
		},
	}
	runCmd.Flags().StringVarP(&input, "input", "i", "-", "Tape input")
	runCmd.Flags().StringVarP(&output, "output", "o", "-", "Tape output")
	runCmd.Flags().BoolVar(&ascii, "ascii", false, "ASCII tapes")
	runCmd.Flags().BoolVar(&interactive, "interactive", false, "Read input from the terminal")
	runCmd.Flags().StringVar(&history, "history", "", "Interactive history file")

	// asm
	var asmOutput string
	var listing bool
	var asmCmd = &cobra.Command{
		Use:   "asm SOURCE",
		Short: "Assemble source into a program image",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			inf, err := os.Open(args[0])
			if err != nil {
				log.Fatalf("%v: %v", args[0], err)
			}
			defer inf.Close()

			asm := &cpu.Assembler{Verbose: conf.Machine.Verbose}
			prog, err := asm.Parse(inf)
			if err != nil {
				log.Fatalf("%v: %v", args[0], err)
			}

			ouf := os.Stdout
			if asmOutput != "-" {
				ouf, err = os.Create(asmOutput)
				if err != nil {
					log.Fatalf("%v: %v", asmOutput, err)
				}
				defer ouf.Close()
			}

			if listing {
				fmt.Fprint(ouf, asm.Listing(filepath.Base(args[0])).String())
				return
			}

			fmt.Fprintln(ouf, prog.String())
		},
	}
	asmCmd.Flags().StringVarP(&asmOutput, "output", "o", "-", "Program image output")
	asmCmd.Flags().BoolVarP(&listing, "listing", "l", false, "Write a listing instead of the image")

	// disasm
	var disasmCmd = &cobra.Command{
		Use:   "disasm PROGRAM",
		Short: "Disassemble a program image",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			prog := mustLoad(args[0], conf.Machine.Verbose)
			for inst := range prog.Disassemble() {
				fmt.Printf("%6d: %v\n", inst.Address, inst)
			}
		},
	}

	// amplify
	var amplifyCmd = &cobra.Command{
		Use:   "amplify PROGRAM",
		Short: "Find the phase settings giving the highest amplifier signal",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			amp := amplifier.New(mustLoad(args[0], false), conf.Amplifier)
			amp.Verbose = conf.Machine.Verbose
			amp.Machine = conf.Machine

			phases, best, err := amp.Best()
			if err != nil {
				log.Fatalf("%v: %v", args[0], err)
			}
			fmt.Printf("phases %v signal %v\n", phases, best)
		},
	}

	// paint
	var paintCmd = &cobra.Command{
		Use:   "paint PROGRAM",
		Short: "Run the hull painting robot",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			bot := robot.New(mustLoad(args[0], false), conf.Robot)
			bot.Verbose = conf.Machine.Verbose
			bot.Machine = conf.Machine

			err := bot.Run()
			if err != nil {
				log.Fatalf("%v: %v", args[0], err)
			}
			fmt.Printf("painted %v\n", bot.Painted())
			fmt.Print(bot.Render())
		},
	}

	// arcade
	var arcadeCmd = &cobra.Command{
		Use:   "arcade PROGRAM",
		Short: "Run the arcade cabinet",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			arc := arcade.New(mustLoad(args[0], false), conf.Arcade)
			arc.Verbose = conf.Machine.Verbose
			arc.Machine = conf.Machine

			err := arc.Run()
			if err != nil {
				log.Fatalf("%v: %v", args[0], err)
			}
			fmt.Print(arc.Render())
			fmt.Printf("blocks %v score %v\n", arc.Count(arcade.TILE_BLOCK), arc.Score)
		},
	}

	// camera
	var cameraCmd = &cobra.Command{
		Use:   "camera PROGRAM",
		Short: "Capture the camera picture and its alignment",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cam := camera.New(mustLoad(args[0], false), conf.Camera)
			cam.Machine = conf.Machine

			err := cam.Capture()
			if err != nil {
				log.Fatalf("%v: %v", args[0], err)
			}
			fmt.Print(cam.Render())
			fmt.Printf("alignment %v\n", cam.Alignment())
		},
	}

	// maze
	var mazeCmd = &cobra.Command{
		Use:   "maze PROGRAM",
		Short: "Explore the maze with the repair droid",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			mz := maze.New(conf.Maze)
			mz.Verbose = conf.Machine.Verbose

			err := mz.Explore(maze.NewDroid(mustLoad(args[0], false), conf.Machine))
			if err != nil {
				log.Fatalf("%v: %v", args[0], err)
			}
			fmt.Print(mz.Render())

			moves, err := mz.ShortestPath()
			if err != nil {
				log.Fatalf("%v: %v", args[0], err)
			}
			minutes, err := mz.FillTime()
			if err != nil {
				log.Fatalf("%v: %v", args[0], err)
			}
			fmt.Printf("moves %v fill %v\n", moves, minutes)
		},
	}

	// gravity
	var noun, verb int64
	var gravityCmd = &cobra.Command{
		Use:   "gravity PROGRAM",
		Short: "Search for the noun and verb giving the target",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			prog := mustLoad(args[0], false)

			if noun >= 0 && verb >= 0 {
				result, err := gravity.Evaluate(conf.Machine, prog, noun, verb)
				if err != nil {
					log.Fatalf("%v: %v", args[0], err)
				}
				fmt.Printf("%v\n", result)
				return
			}

			answer, err := gravity.Search(conf.Machine, prog, conf.Gravity)
			if err != nil {
				log.Fatalf("%v: %v", args[0], err)
			}
			fmt.Printf("%v\n", answer)
		},
	}
	gravityCmd.Flags().Int64Var(&noun, "noun", -1, "Evaluate this noun only")
	gravityCmd.Flags().Int64Var(&verb, "verb", -1, "Evaluate this verb only")

	// config
	var configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the configuration in effect",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			err := conf.Write(os.Stdout)
			if err != nil {
				log.Fatal(err)
			}
		},
	}

	rootCmd.AddCommand(runCmd, asmCmd, disasmCmd, amplifyCmd, paintCmd,
		arcadeCmd, cameraCmd, mazeCmd, gravityCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
