// Package cli implements the groundchat command-line interface using
// cobra. Each command lives in its own file and registers itself on
// the root command in init. Services are injected via SetServices at
// startup; commands that need a service check for nil and report
// "not configured" so the binary stays usable before credentials exist.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/groundchat/internal/core/ports/driving"
	"github.com/custodia-labs/groundchat/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// verbose enables debug logging on every command.
var verbose bool

// Injected services shared by the commands.
var (
	settingsService   driving.SettingsService
	documentService   driving.DocumentService
	chatService       driving.ChatService
	collectionService driving.CollectionService
)

// Services aggregates the driving ports the CLI runs against.
// Remote-backed services stay nil until SAP credentials are configured.
type Services struct {
	Settings    driving.SettingsService
	Documents   driving.DocumentService
	Chat        driving.ChatService
	Collections driving.CollectionService
}

// SetServices injects the application services into the CLI commands.
func SetServices(services Services) {
	settingsService = services.Settings
	documentService = services.Documents
	chatService = services.Chat
	collectionService = services.Collections
}

// rootCmd is the base command all subcommands attach to.
var rootCmd = &cobra.Command{
	Use:   "groundchat",
	Short: "Chat with your documents, grounded in SAP AI Core",
	Long: `groundchat uploads documents into SAP AI Core's document grounding
service and answers questions about them using only their own content.

Upload a document, then chat against the collection it creates:

  groundchat upload handbook.pdf
  groundchat chat <collection-id>

Run 'groundchat configure' first to store your AI Core service key.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}
