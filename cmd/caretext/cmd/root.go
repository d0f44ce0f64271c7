/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/caretext/rope/pkg/config"
	"github.com/caretext/rope/pkg/di"
)

var dataDir string

// container is the dependency container built from the resolved
// configuration in PersistentPreRunE and torn down in
// PersistentPostRunE.
var container *di.Container

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "caretext",
	Short: "caretext - a rope-backed document editing service",
	Long: `caretext stores documents as an immutable B-tree rope with an
append-only edit journal, durable snapshots, and a REST API for
editing and searching document content.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}
		c, err := di.NewContainer(cfg)
		if err != nil {
			return fmt.Errorf("failed to build container: %w", err)
		}
		container = c
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if container == nil {
			return nil
		}
		return container.Close()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "./data", "Data directory for the store")
}
