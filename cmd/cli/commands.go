package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(drawCmd)
	rootCmd.AddCommand(replicateCmd)
	rootCmd.AddCommand(inviteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the account's matches and the active selection",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches")
	},
}

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Draw balanced teams from the active match's confirmed players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/draw", nil)
	},
}

var replicateCmd = &cobra.Command{
	Use:   "replicate [months]",
	Short: "Clone the active match weekly for the given number of months",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		months, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid months value %q: %w", args[0], err)
		}
		body := fmt.Sprintf(`{"monthsAhead":%d}`, months)
		return performPostRequest("/matches/replicate", []byte(body))
	},
}

var inviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Generate a WhatsApp invite message for the active match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/invite", nil)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a full backup document",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/backup/export")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func requestURL(endpoint string) string {
	target := host + endpoint
	if account != "" {
		target += "?account=" + url.QueryEscape(account)
	}
	return target
}

func performGetRequest(endpoint string) error {
	target := requestURL(endpoint)
	fmt.Printf("Making request to %s\n", target)

	resp, err := http.Get(target)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, body []byte) error {
	target := requestURL(endpoint)
	fmt.Printf("Making request to %s\n", target)

	resp, err := http.Post(target, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
