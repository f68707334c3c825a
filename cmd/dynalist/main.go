package main

import (
	"fmt"
	"os"
	"strings"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"list": true, "tree": true, "find": true,
	"export": true, "pull": true, "status": true,
	"init": true, "changes": true, "update": true,
	"mcp": true, "help": true,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: dynalist <command> [options]")
		fmt.Fprintln(os.Stderr, "Run 'dynalist --help' for the command list.")
		os.Exit(1)
	}

	first := os.Args[1]
	if !cliCommands[first] && !strings.HasPrefix(first, "-") {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", first)
		fmt.Fprintln(os.Stderr, "Run 'dynalist --help' for the command list.")
		os.Exit(1)
	}

	app := newCLIApp(defaultEnv())
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
