// Package cli wires the service into cobra commands.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "faceattendance",
	Short: "Face recognition attendance backend",
	Long: `Face Attendance enrolls students with a photo and finds enrolled
students in group photos of a class.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional
	_ = godotenv.Load()
}
