package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/KTH-EXPECA/expecactl/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// isTerminal reports whether stdout is an interactive terminal.
	isTerminal = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	// runWizard runs the interactive configuration wizard.
	runWizard = config.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = config.Save
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if !isTerminal() {
		return fmt.Errorf("init is interactive and needs a terminal")
	}

	if fileExists(outputPath) {
		fmt.Fprintf(stdout, "Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := result.ToConfig()

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

func printWelcome() {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "expecactl - experiments on the ExPECA testbed")
	fmt.Fprintln(stdout, "=============================================")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "This wizard creates an experiment configuration with sensible defaults.")
	fmt.Fprintln(stdout)
}

func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Configuration saved!")
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  File: %s\n", outputPath)
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Experiment Summary")
	fmt.Fprintln(stdout, "------------------")
	fmt.Fprintf(stdout, "  Name:       %s\n", cfg.Name)
	for _, item := range cfg.Items {
		if item.Type == config.ItemTypeNetwork {
			fmt.Fprintf(stdout, "  Network:    %s (VLAN %s)\n", item.Name, item.SegmentID)
		} else {
			fmt.Fprintf(stdout, "  Device:     %s\n", item.Name)
		}
	}
	for _, ct := range cfg.Containers {
		fmt.Fprintf(stdout, "  Container:  %s (%s)\n", ct.Name, ct.Image)
	}
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Next Steps")
	fmt.Fprintln(stdout, "----------")
	fmt.Fprintln(stdout, "  1. Source your OpenStack credentials:")
	fmt.Fprintln(stdout, "     source openrc.sh")
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  2. Review %s if needed\n", outputPath)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "  3. Bring the experiment up:")
	fmt.Fprintln(stdout, "     expecactl apply")
	fmt.Fprintln(stdout)
}
