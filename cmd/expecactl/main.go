// Package main is the entry point for the expecactl CLI.
//
// expecactl provisions experiments on the KTH ExPECA testbed: it
// reserves radio devices and isolated VLAN networks through Blazar,
// waits for the leases to come up, and runs containers on the reserved
// hardware. Configuration is a single YAML file; credentials come from
// the usual OS_* environment variables.
//
// Commands: init, apply, destroy, reserve, unreserve, list, show,
// containers, status.
//
// For detailed usage information, run:
//
//	expecactl --help
package main

import (
	"fmt"
	"os"

	"github.com/KTH-EXPECA/expecactl/cmd/expecactl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
