package cli

import (
	"errors"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Show PDF metadata without processing",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	if infoService == nil {
		return errors.New("info service not configured")
	}
	path := args[0]

	pages, metadata, err := infoService.Info(path)
	if err != nil {
		return err
	}

	abs, aerr := filepath.Abs(path)
	if aerr != nil {
		abs = path
	}
	cmd.Printf("File: %s\n", filepath.Base(path))
	cmd.Printf("Path: %s\n", abs)
	cmd.Printf("Pages: %d\n", pages)

	if len(metadata) > 0 {
		cmd.Println("\nMetadata:")
		keys := make([]string, 0, len(metadata))
		for k := range metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			cmd.Printf("  %s: %s\n", k, metadata[k])
		}
	}
	return nil
}
