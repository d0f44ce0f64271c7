package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caretext/rope/pkg/docstore"
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <document-id>",
	Short: "Append to or replace a range within a document",
	Long: `Edit a document in place, either appending text or replacing a
byte range with a replacement string.

Examples:
  caretext edit 2N1vG5... --append=" more text"
  caretext edit 2N1vG5... --start=0 --end=5 --text="hello"`,
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

		appendText, _ := cmd.Flags().GetString("append")
		start, _ := cmd.Flags().GetInt("start")
		end, _ := cmd.Flags().GetInt("end")
		text, _ := cmd.Flags().GetString("text")

		if appendText != "" {
			if err := doc.Append(appendText); err != nil {
				return fmt.Errorf("append failed: %w", err)
			}
		} else {
			if err := doc.ReplaceRange(start, end, text); err != nil {
				return fmt.Errorf("replace failed: %w", err)
			}
		}

		stat := doc.Stat()
		cmd.Printf("ok: %d bytes, %d chars, %d lines\n", stat.Bytes, stat.Chars, stat.Lines)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().String("append", "", "Text to append to the document")
	editCmd.Flags().Int("start", 0, "Start byte offset for a range replacement")
	editCmd.Flags().Int("end", 0, "End byte offset for a range replacement")
	editCmd.Flags().String("text", "", "Replacement text for a range replacement")
}
