package cmd

import (
	"log"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "administracion",
	Short: "API Administración - Sistema Completo",
	Run: func(cmd *cobra.Command, args []string) {
		// Bare invocation serves, same as `administracion serve`
		runServer()
	},
}

// Execute runs the CLI.
func Execute() {
	fig := figure.NewFigure("Administracion ->", "", true)
	fig.Print()

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
