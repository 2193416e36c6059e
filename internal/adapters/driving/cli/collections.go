package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Manage document collections",
	Long:  `List or delete the vector collections backing uploaded documents.`,
}

var collectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections",
	RunE:  runCollectionsList,
}

var collectionsDeleteCmd = &cobra.Command{
	Use:   "delete [collection-id]",
	Short: "Delete a collection",
	Long:  `Removes a collection and every chunk ingested into it. This cannot be undone.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionsDelete,
}

// collectionsJSON is a flag for the list command.
var collectionsJSON bool

func init() {
	collectionsListCmd.Flags().BoolVar(&collectionsJSON, "json", false, "output as JSON")

	collectionsCmd.AddCommand(collectionsListCmd)
	collectionsCmd.AddCommand(collectionsDeleteCmd)
	rootCmd.AddCommand(collectionsCmd)
}

func runCollectionsList(cmd *cobra.Command, _ []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	ctx := context.Background()

	collections, err := collectionService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	if collectionsJSON {
		data, err := json.MarshalIndent(collections, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal collections: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(collections) == 0 {
		cmd.Println("No collections found. Upload a document to create one.")
		return nil
	}

	cmd.Println("Collections:")
	cmd.Println()
	for i := range collections {
		title := collections[i].Title
		if title == "" {
			title = "(untitled)"
		}
		cmd.Printf("  %s\n", collections[i].ID)
		cmd.Printf("    Title: %s\n", title)
		cmd.Println()
	}

	cmd.Printf("Total: %d collections\n", len(collections))
	return nil
}

func runCollectionsDelete(cmd *cobra.Command, args []string) error {
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	id := args[0]
	ctx := context.Background()

	if err := collectionService.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	cmd.Printf("Collection %s deleted.\n", id)
	return nil
}
