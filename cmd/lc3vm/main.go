// Command lc3vm runs LC-3 binary images.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/aryanA101a/lc3vm/vm"
)

type cli struct {
	// No type:"existingfile" here: existence/openability is Memory.LoadImage's
	// job, so a missing path surfaces as the documented "Failed to load
	// image" / exit 1, not a generic kong parse error / exit 2.
	Images []string `arg:"" name:"image-file" help:"LC-3 image file(s) to load, in load order."`
	Trace  bool     `help:"Log every decoded instruction to stderr."`
}

// runHost is what run needs from a host beyond vm.Host: the ability to
// install a SIGINT handler. Split out so tests can supply a fake that
// never touches a real terminal or signal.Notify.
type runHost interface {
	vm.Host
	InstallInterruptHandler(fn func())
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr, vm.NewTerminalHost()))
}

// run parses args, drives the VM to completion against host, and returns
// the process exit code. Split out from main so the exit-code contract is
// testable without spawning a subprocess.
func run(args []string, stderr io.Writer, host runHost) int {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("lc3vm"),
		kong.Description("A virtual machine for the LC-3 instruction set architecture."),
		kong.UsageOnError(),
		kong.Writers(stderr, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	machine := vm.New(host)
	machine.CPU.Trace = c.Trace

	for _, img := range c.Images {
		if err := machine.Memory.LoadImage(img); err != nil {
			fmt.Fprintf(stderr, "Failed to load image: %s\n", img)
			return 1
		}
	}

	if err := machine.Start(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	host.InstallInterruptHandler(func() {
		machine.Stop()
		os.Exit(-2)
	})

	runErr := machine.Run()
	stopErr := machine.Stop()

	if runErr != nil {
		fmt.Fprintln(stderr, runErr)
		if errors.Is(runErr, vm.ErrReservedOpcode) {
			return 3
		}
		return 1
	}
	if stopErr != nil {
		fmt.Fprintln(stderr, stopErr)
		return 1
	}
	return 0
}
