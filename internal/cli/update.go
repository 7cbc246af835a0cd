package cli

import (
	"fmt"

	"github.com/aydinemre/tubesum/internal/updater"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update tubesum to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return updater.Update()
	},
}

var checkUpdateCmd = &cobra.Command{
	Use:   "check-update",
	Short: "Check whether a newer version is available",
	RunE: func(cmd *cobra.Command, args []string) error {
		latest, available, err := updater.CheckUpdate()
		if err != nil {
			return err
		}
		if !available {
			fmt.Println("Already up to date")
			return nil
		}
		fmt.Printf("New version available: %s (run 'tubesum update')\n", latest.Version())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(checkUpdateCmd)
}
