package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure SAP AI Core credentials",
	Long: `Interactive setup for the SAP AI Core connection.

Values come from the service key created for your AI Core instance.
Press Enter at a prompt to keep the current value. The client secret
is read without echo.`,
	RunE: runConfigure,
}

var configureShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigureShow,
}

func init() {
	configureCmd.AddCommand(configureShowCmd)
	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("groundchat Configuration")
	cmd.Println("========================")
	cmd.Println("Enter the values from your SAP AI Core service key.")
	cmd.Println()

	reader := bufio.NewReader(os.Stdin)

	apiURL := promptValue(cmd, reader, "AI API URL", settings.SAP.APIURL)
	authURL := promptValue(cmd, reader, "Auth URL", settings.SAP.AuthURL)
	clientID := promptValue(cmd, reader, "Client ID", settings.SAP.ClientID)

	secretDisplay := "(not set)"
	if settings.SAP.ClientSecret != "" {
		secretDisplay = maskAPIKey(settings.SAP.ClientSecret)
	}
	cmd.Printf("Client secret [%s]: ", secretDisplay)
	clientSecret := readPassword()
	cmd.Println()
	if clientSecret == "" {
		clientSecret = settings.SAP.ClientSecret
	}

	resourceGroup := promptValue(cmd, reader, "Resource group", settings.SAP.ResourceGroup)

	if err := settingsService.SetCredentials(apiURL, authURL, clientID, clientSecret, resourceGroup); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	cmd.Println()
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Credentials are complete.")
		cmd.Println("Restart with 'groundchat serve' to pick them up.")
	}
	cmd.Printf("Saved to %s\n", settingsService.Path())

	return nil
}

func runConfigureShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Println()

	cmd.Println("[SAP AI Core]")
	cmd.Printf("  API URL:        %s\n", valueOrUnset(settings.SAP.APIURL))
	cmd.Printf("  Auth URL:       %s\n", valueOrUnset(settings.SAP.AuthURL))
	cmd.Printf("  Client ID:      %s\n", valueOrUnset(settings.SAP.ClientID))
	if settings.SAP.ClientSecret != "" {
		cmd.Printf("  Client secret:  %s\n", maskAPIKey(settings.SAP.ClientSecret))
	} else {
		cmd.Printf("  Client secret:  (not set)\n")
	}
	cmd.Printf("  Resource group: %s\n", valueOrUnset(settings.SAP.ResourceGroup))
	status := "configured"
	if !settings.SAP.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Listen: %s\n", settings.Server.Addr())
	cmd.Printf("  CORS origins: %s\n", strings.Join(settings.Server.CORSOrigins, ", "))
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	cmd.Printf("  Temperature: %.1f\n", settings.LLM.Temperature)
	cmd.Printf("  Max tokens: %d\n", settings.LLM.MaxTokens)
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Chunk size: %d\n", settings.Chunking.ChunkSize)
	cmd.Println()

	cmd.Println("[Grounding]")
	cmd.Printf("  Embedding model: %s\n", settings.Grounding.EmbeddingModel)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'groundchat configure' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

// Helper functions.

// promptValue asks for one field, keeping the current value on empty
// input.
func promptValue(cmd *cobra.Command, reader *bufio.Reader, label, current string) string {
	display := current
	if display == "" {
		display = "(not set)"
	}
	cmd.Printf("%s [%s]: ", label, display)
	input := readLine(reader)
	if input == "" {
		return current
	}
	return input
}

func valueOrUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
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
