// Package cli implements the ignitedb command-line front end: argument
// parsing, exit codes, and human-readable messages layered over the
// engine's four operations. The engine itself carries no knowledge of
// exit codes or stdout formatting; that mapping lives entirely here.
package cli

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"

	"ignitedb/pkg/errors"
	"ignitedb/pkg/ignite"

	flag "github.com/spf13/pflag"
)

// Version is the package version string printed by -V/--version. Set
// at build time via -ldflags if a real release process is wired up;
// defaults to "dev" otherwise.
var Version = "dev"

const usage = `Usage:
  ignitedb get <key>
  ignitedb set <key> <value>
  ignitedb rm <key>
  ignitedb -V`

// Run parses args and executes the requested sub-command against the
// engine rooted at dir, writing results to stdout/stderr and returning
// the process exit code.
func Run(stdin io.Reader, stdout, stderr io.Writer, args []string, dir string) int {
	flags := flag.NewFlagSet("ignitedb", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}
	flagVersion := flags.BoolP("version", "V", false, "print version and exit")

	if err := flags.Parse(args[1:]); err != nil {
		fmt.Fprintln(stderr, usage)
		return 1
	}

	if *flagVersion {
		fmt.Fprintln(stdout, Version)
		return 0
	}

	rest := flags.Args()
	if len(rest) == 0 {
		fmt.Fprintln(stderr, usage)
		return 1
	}

	ctx := context.Background()

	switch rest[0] {
	case "get":
		if len(rest) != 2 {
			fmt.Fprintln(stderr, usage)
			return 1
		}
		return runGet(ctx, stdout, stderr, dir, rest[1])

	case "set":
		if len(rest) != 3 {
			fmt.Fprintln(stderr, usage)
			return 1
		}
		return runSet(ctx, stderr, dir, rest[1], rest[2])

	case "rm":
		if len(rest) != 2 {
			fmt.Fprintln(stderr, usage)
			return 1
		}
		return runRemove(ctx, stdout, stderr, dir, rest[1])

	default:
		fmt.Fprintln(stderr, usage)
		return 1
	}
}

func openInstance(ctx context.Context, dir string) (*ignite.Instance, error) {
	return ignite.NewInstance(ctx, "ignitedb-cli", dir)
}

func runGet(ctx context.Context, stdout, stderr io.Writer, dir, key string) int {
	inst, err := openInstance(ctx, dir)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer inst.Close(ctx)

	value, found, err := inst.Get(ctx, key)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if !found {
		fmt.Fprintln(stdout, "Key not found")
		return 0
	}

	fmt.Fprintln(stdout, value)
	return 0
}

func runSet(ctx context.Context, stderr io.Writer, dir, key, value string) int {
	inst, err := openInstance(ctx, dir)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer inst.Close(ctx)

	if err := inst.Set(ctx, key, value); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	return 0
}

func runRemove(ctx context.Context, stdout, stderr io.Writer, dir, key string) int {
	inst, err := openInstance(ctx, dir)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer inst.Close(ctx)

	if err := inst.Remove(ctx, key); err != nil {
		if stdErrors.Is(err, errors.ErrKeyNotFound) {
			fmt.Fprintln(stdout, "Key not found")
			return 1
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	return 0
}
