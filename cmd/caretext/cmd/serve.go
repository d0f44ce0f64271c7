package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caretext/rope/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the caretext REST API server with authentication.

Example:
  caretext serve --api-key=mysecretkey --port=8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		apiKey, _ := cmd.Flags().GetString("api-key")

		if apiKey == "" {
			return fmt.Errorf("--api-key is required")
		}

		serverConfig := api.ServerConfig{
			Port:    port,
			APIKey:  apiKey,
			DataDir: dataDir,
		}

		return api.StartServer(container.Registry(), container.Search(), serverConfig)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("api-key", "", "API key for authentication (required)")
	serveCmd.MarkFlagRequired("api-key")
}
