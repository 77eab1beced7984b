package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lintmux",
	Short: "lintmux - multi-tool lint and scan normalization pipeline",
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
