package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put <content>",
	Short: "Create a new document",
	Long: `Create a new document from the given initial content and print
its document ID.

Example:
  caretext put "hello, world"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := container.Registry().Create(args[0])
		if err != nil {
			return fmt.Errorf("failed to create document: %w", err)
		}
		cmd.Println(doc.ID.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
}
