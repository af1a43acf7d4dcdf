package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

type versionPayload struct {
	Tool    string `json:"tool"`
	Version string `json:"version"`
}

func newVersionCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the posprintf version",
		Args:  cobra.NoArgs,
		// Replaces the root hook: version never loads the config file.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch strings.ToLower(format) {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				return enc.Encode(versionPayload{Tool: "posprintf", Version: version})
			case "pretty", "":
				out := cmd.OutOrStdout()
				_, err := fmt.Fprintf(out, "posprintf %s\n", colorize(a.colorMode, out, color.FgYellow, color.Bold).Sprint(version))
				return err
			default:
				return fmt.Errorf("unknown version format %q (want pretty or json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}
