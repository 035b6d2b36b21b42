package main

import (
	"github.com/spf13/cobra"

	"credd/internal/di"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API until SIGINT or SIGTERM",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := di.InitApp(&flags)
		if err != nil {
			return err
		}
		defer cleanup()
		return app.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
