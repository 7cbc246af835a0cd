package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aydinemre/tubesum/internal/core/provider"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List AI providers and their availability",
	Run: func(cmd *cobra.Command, args []string) {
		for _, info := range provider.List() {
			if provider.IsAvailable(info.Name) {
				fmt.Printf("  %-10s %-18s %s\n", info.Name, info.Display, color.GreenString("ready"))
			} else {
				fmt.Printf("  %-10s %-18s %s\n", info.Name, info.Display, color.YellowString("missing %s", info.Credential))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
