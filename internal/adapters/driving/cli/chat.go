package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/groundchat/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat [collection-id]",
	Short: "Chat with an uploaded document",
	Long: `Open an interactive chat session over one document collection.

Questions are answered using only the document's own content. Use
'groundchat collections list' to find the collection ID.

Controls:
  Enter   - Ask
  ↑/↓     - Scroll the transcript
  Ctrl+L  - Clear the transcript
  Esc     - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	// Panic recovery keeps a stack trace visible if the session crashes
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat session: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Chat:        chatService,
		Collections: collectionService,
	}

	app, err := tui.NewApp(ports, args[0])
	if err != nil {
		return fmt.Errorf("failed to create chat session: %w", err)
	}

	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("chat session error: %w", err)
	}

	return nil
}
