package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caretext/rope/pkg/docstore"
)

// statCmd represents the stat command
var statCmd = &cobra.Command{
	Use:   "stat <document-id>",
	Short: "Print a document's size statistics",
	Long: `Print a document's byte, character, and line counts.

Example:
  caretext stat 2N1vG5...`,
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

		stat := doc.Stat()
		cmd.Printf("bytes: %d\nchars: %d\nlines: %d\n", stat.Bytes, stat.Chars, stat.Lines)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statCmd)
}
