package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sena-ops/lintmux/internal/adapters"
	"github.com/Sena-ops/lintmux/internal/config"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the registered analysis tools",
	Run: func(cmd *cobra.Command, args []string) {
		var cfg config.Config
		for _, name := range adapters.Names() {
			tc := cfg.Resolve(name)
			fmt.Printf("%-12s %s\n", name, strings.Join(tc.Args, " "))
		}
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
