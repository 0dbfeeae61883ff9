package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the oracle provider, default model, and processing
options. Settings persist in the config file; command-line flags
override them per run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Available keys:
  oracle.provider          - claude (local CLI) or anthropic (HTTP API)
  oracle.model             - default model: haiku, sonnet, opus
  oracle.api_key           - Anthropic API key (prompted if no value given)
  oracle.binary            - claude CLI binary to invoke (default claude)
  processing.speed         - default speed mode: fast, balanced, thorough
  processing.ocr_language  - tesseract language code (e.g. eng, deu)`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Oracle]")
	cmd.Printf("  Provider: %s\n", configValue("oracle.provider", "claude"))
	cmd.Printf("  Model: %s\n", configValue("oracle.model", string(domain.ModelSonnet)))
	if key := configStore.GetString("oracle.api_key"); key != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(key))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	cmd.Println()

	cmd.Println("[Processing]")
	cmd.Printf("  Speed: %s\n", configValue("processing.speed", string(domain.SpeedBalanced)))
	cmd.Printf("  OCR language: %s\n", configValue("processing.ocr_language", "eng"))
	cmd.Println()

	cmd.Printf("Config file: %s\n", configStore.Path())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	key := args[0]

	var value string
	if len(args) == 2 {
		value = args[1]
	} else if key == "oracle.api_key" {
		cmd.Print("Enter API key: ")
		value = readPassword()
		cmd.Println()
	} else {
		return fmt.Errorf("%w: no value given for %s", domain.ErrInvalidInput, key)
	}

	if err := validateSetting(key, value); err != nil {
		return err
	}
	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	if key == "oracle.api_key" {
		cmd.Printf("Set %s = %s\n", key, maskAPIKey(value))
	} else {
		cmd.Printf("Set %s = %s\n", key, value)
	}
	return nil
}

func validateSetting(key, value string) error {
	switch key {
	case "oracle.provider":
		if value != "claude" && value != "anthropic" {
			return fmt.Errorf("%w: provider must be claude or anthropic", domain.ErrInvalidInput)
		}
	case "oracle.model":
		if _, ok := domain.ParseModel(value); !ok {
			return fmt.Errorf("%w: model must be haiku, sonnet, or opus", domain.ErrInvalidInput)
		}
	case "oracle.api_key":
		if value == "" {
			return fmt.Errorf("%w: API key must not be empty", domain.ErrInvalidInput)
		}
	case "oracle.binary":
		if value == "" {
			return fmt.Errorf("%w: binary must not be empty", domain.ErrInvalidInput)
		}
	case "processing.speed":
		if _, ok := domain.ParseSpeedMode(value); !ok {
			return fmt.Errorf("%w: speed must be fast, balanced, or thorough", domain.ErrInvalidInput)
		}
	case "processing.ocr_language":
		if value == "" {
			return fmt.Errorf("%w: language must not be empty", domain.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return nil
}

func configValue(key, fallback string) string {
	if v := configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
