// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/ezrec/c8asm/asm"
	"github.com/ezrec/c8asm/translate"
)

// rootCmd assembles a single source file.
var rootCmd = &cobra.Command{
	Use:   "c8asm [flags] source",
	Short: "A CHIP-8 assembler.",
	Long: `Assemble a CHIP-8 source file into a binary image, to be loaded
	 at address 0x200 by a CHIP-8 interpreter. Use '-' to read from stdin.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		if lang := GetString(cmd, "lang"); len(lang) != 0 {
			err = translate.SetLanguage(lang)
			if err != nil {
				return
			}
		}

		assembler := &asm.Assembler{Log: log.StandardLogger()}
		for _, item := range GetStringArray(cmd, "define") {
			var name string
			var value uint16
			name, value, err = parseDefine(item)
			if err != nil {
				return
			}
			assembler.Predefine(name, value)
		}

		input := args[0]
		source, err := readSource(input, cmd.InOrStdin())
		if err != nil {
			return
		}

		prog, err := assembler.Assemble(string(source))
		if err != nil {
			err = fmt.Errorf("%v: %w", input, err)
			return
		}

		if GetFlag(cmd, "listing") {
			err = prog.Listing(cmd.OutOrStdout())
			if err != nil {
				return
			}
		}

		err = writeProgram(GetString(cmd, "output"), prog, cmd.OutOrStdout())
		return
	},
}

// readSource reads the whole source file, or stdin for "-".
func readSource(path string, stdin io.Reader) (source []byte, err error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

// createOutput opens the image file for writing.
var createOutput = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// writeProgram writes the program image to path. On a terminal stdout a
// listing is written instead of raw bytes.
func writeProgram(path string, prog *asm.Program, stdout io.Writer) (err error) {
	if path == "-" {
		if file, ok := stdout.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
			log.Debug("stdout is a terminal, writing listing")
			return prog.Listing(stdout)
		}
		_, err = prog.WriteTo(stdout)
		return
	}

	file, err := createOutput(path)
	if err != nil {
		return
	}

	// Never leave a truncated image behind, on error or early exit.
	done := false
	cleanup := func() {
		if !done {
			done = true
			log.Debugf("removing partial output %v", path)
			os.Remove(path)
		}
	}
	atexit.Register(cleanup)

	_, err = prog.WriteTo(file)
	if err == nil {
		err = file.Close()
	} else {
		file.Close()
	}
	if err != nil {
		cleanup()
		return
	}

	done = true
	log.WithField("bytes", len(prog.Opcodes)*2).Debugf("wrote %v", path)

	return
}

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		panic(err)
	}
	return r
}

// GetString gets an expected string, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		panic(err)
	}
	return r
}

// GetStringArray gets an expected string array, or panic if an error arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		panic(err)
	}
	return r
}

func init() {
	rootCmd.Flags().StringP("output", "o", "a.c8", "output file, '-' for stdout")
	rootCmd.Flags().BoolP("listing", "l", false, "print a listing to stdout")
	rootCmd.Flags().StringArrayP("define", "D", []string{}, "define an expression constant, NAME=VALUE")
	rootCmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.Flags().String("lang", "", "language for messages, overrides the system locale")
}
