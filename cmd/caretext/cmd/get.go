package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caretext/rope/pkg/docstore"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <document-id>",
	Short: "Print a document's content",
	Long: `Get a document's current content by ID.

Example:
  caretext get 2N1vG5...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := docstore.ParseDocumentID(args[0])
		if err != nil {
			return fmt.Errorf("invalid document id: %w", err)
		}

		doc, err := container.Registry().GetOrOpen(id)
		if err != nil {
			return fmt.Errorf("failed to open document: %w", err)
		}

		cmd.Println(doc.Text())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
