package commands

import (
	"fmt"
	"os"

	"github.com/motoshop/motoshop/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "motoshop",
	Short: "Motorcycle shop and blog server",
	Long: `motoshop serves the shop catalog, orders and blog over HTTP and
bundles the maintenance tasks that go with it.

Configuration is read from the environment (and a .env file outside production).`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Container, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return cfg, nil
}
