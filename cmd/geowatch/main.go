// Command geowatch accepts positioning devices over websockets and shows
// their event streams live in the terminal.
package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	addr             string
	desireAlways     bool
	calibration      bool
	handshakeTimeout time.Duration
	commandSchema    bool
)

var rootCmd = &cobra.Command{
	Use:          "geowatch",
	Short:        "Watch positioning devices stream their events",
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Accept devices and show their events",
	Long:  `The serve command listens for devices on the /device websocket endpoint, builds a positioning adapter for every connection and renders the streams in a terminal UI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), serveConfig{
			addr:             addr,
			always:           desireAlways,
			calibration:      calibration,
			handshakeTimeout: handshakeTimeout,
		})
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of device frames",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSchema(cmd.OutOrStdout(), commandSchema)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().BoolVar(&desireAlways, "always", false, "Request always authorization instead of when in use")
	serveCmd.Flags().BoolVar(&calibration, "calibration", false, "Let devices show the heading calibration prompt")
	serveCmd.Flags().DurationVar(&handshakeTimeout, "handshake-timeout", 10*time.Second, "How long to wait for a device's hello frame")
	schemaCmd.Flags().BoolVar(&commandSchema, "commands", false, "Print the schema of commands sent to devices instead")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(schemaCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
