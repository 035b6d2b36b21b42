package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"credd/internal/providers"
	"credd/internal/structures"
)

var version = "dev"

var flags structures.CliFlags

var rootCmd = &cobra.Command{
	Use:   "credd",
	Short: "Content credibility scoring service",
	Long: `credd scores submitted text for credibility, remembers every scan,
and short-circuits content already confirmed as misinformation.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", providers.AppName, version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "./config.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror logs to stdout")

	rootCmd.AddCommand(versionCmd)
}
