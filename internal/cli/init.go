package cli

import (
	"fmt"

	"github.com/aydinemre/tubesum/internal/core/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create tubesum config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.Exists() {
			path, _ := config.ConfigPath()
			fmt.Printf("Config already exists at %s\n", path)
			return nil
		}

		cfg := config.DefaultConfig()
		if err := config.Save(cfg); err != nil {
			return err
		}

		path, _ := config.ConfigPath()
		fmt.Printf("Saved %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
