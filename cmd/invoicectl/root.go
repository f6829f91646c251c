package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/ridwanfathin/invoice-review-service/internal/apiclient"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	apiTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "invoicectl",
	Short: "Review extracted invoices from the command line",
	Long: `invoicectl drives the PDF review dashboard API: upload a PDF, extract its
invoice fields, correct them and save the result.`,
	SilenceUsage: true,
}

func init() {
	defaultURL := os.Getenv("INVOICE_API_URL")
	if defaultURL == "" {
		defaultURL = apiclient.DefaultBaseURL
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultURL, "API base URL (env INVOICE_API_URL)")
	rootCmd.PersistentFlags().DurationVar(&apiTimeout, "timeout", 60*time.Second, "Request timeout")
}

func newClient() *apiclient.Client {
	return apiclient.NewClient(&apiclient.Config{BaseURL: apiURL, Timeout: apiTimeout})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
