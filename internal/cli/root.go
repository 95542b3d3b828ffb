package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var (
	outputJSON bool
	serverURL  string
	client     *Client
)

var rootCmd = &cobra.Command{
	Use:   "casitactl",
	Short: "Admin CLI for the casita pricing engine",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		client = NewClient(serverURL)
	},
	SilenceUsage: true,
}

func Execute() {
	rootCmd.AddCommand(quoteCmd())
	rootCmd.AddCommand(calendarCmd())
	rootCmd.AddCommand(metricsCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	defaultServer := os.Getenv("CASITA_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "Pricing API base URL")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output JSON")
}

func writeJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
