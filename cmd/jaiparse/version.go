package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jaiparse/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().Bool("full", false, "include commit, message and build date")
}

type versionPayload struct {
	Tool string `json:"tool"`
	version.Info
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	full, err := cmd.Flags().GetBool("full")
	if err != nil {
		return fmt.Errorf("failed to get full flag: %w", err)
	}
	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	color.NoColor = colorMode == "off" || (colorMode != "on" && !isTerminal(os.Stdout))

	info := version.Get()
	switch strings.ToLower(format) {
	case "json":
		if !full {
			info = version.Info{Version: info.Version}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(versionPayload{Tool: "jaiparse", Info: info})
	case "pretty":
		renderVersion(cmd.OutOrStdout(), info, full)
		return nil
	}
	return fmt.Errorf("unknown format %q (expected pretty|json)", format)
}

func renderVersion(w io.Writer, info version.Info, full bool) {
	fmt.Fprintf(w, "jaiparse %s\n", info.Colored())
	if !full {
		return
	}
	commit := valueOrUnknown(info.ShortCommit())
	if info.Modified {
		commit += " (modified)"
	}
	fmt.Fprintf(w, "commit:  %s\n", commit)
	fmt.Fprintf(w, "message: %s\n", valueOrUnknown(info.Message))
	fmt.Fprintf(w, "built:   %s\n", valueOrUnknown(info.BuildDate))
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
