package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/groundchat/internal/core/domain"
)

// uploadChunkSize is a flag for the upload command.
var uploadChunkSize int

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a document for grounded chat",
	Long: `Uploads a document, splits its text into chunks and ingests them into
a new vector collection. Prints the collection ID to chat against.

Supported formats: plain text (.txt, .md and friends) and PDF.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().IntVar(&uploadChunkSize, "chunk-size", 0, "chunk size in characters (0 = configured default)")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	cmd.Printf("Uploading %s...\n", filepath.Base(path))

	ctx := context.Background()
	result, err := documentService.Upload(ctx, domain.UploadRequest{
		Filename:  filepath.Base(path),
		Data:      data,
		ChunkSize: uploadChunkSize,
	})
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Println()
	cmd.Printf("  Collection: %s\n", result.CollectionID)
	cmd.Printf("  Document:   %s\n", result.DocumentName)
	cmd.Printf("  Chunks:     %d\n", result.ChunksCount)
	cmd.Println()
	cmd.Printf("Chat with it: groundchat chat %s\n", result.CollectionID)

	return nil
}
