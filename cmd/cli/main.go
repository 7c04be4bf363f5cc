package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coinledger-cli",
		Short: "Coinledger CLI tool",
		Long:  `A command line interface for interacting with the coinledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the coinledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCmd(), transactionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var (
		id        string
		name      string
		direction string
		balance   int64
		currency  string
	)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Run: func(cmd *cobra.Command, args []string) {
			body := map[string]any{"direction": direction}
			if id != "" {
				body["id"] = id
			}
			if name != "" {
				body["name"] = name
			}
			if balance != 0 {
				body["balance"] = balance
			}
			if currency != "" {
				body["currency"] = currency
			}
			post("/accounts", body)
		},
	}
	createCmd.Flags().StringVar(&id, "id", "", "Account id (UUID, generated when omitted)")
	createCmd.Flags().StringVar(&name, "name", "", "Display name")
	createCmd.Flags().StringVar(&direction, "direction", "", "Normal balance polarity: debit or credit")
	createCmd.Flags().Int64Var(&balance, "balance", 0, "Initial balance in minor units")
	createCmd.Flags().StringVar(&currency, "currency", "", "Currency code (default USD)")
	createCmd.MarkFlagRequired("direction")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get an account by id",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/accounts/" + args[0])
		},
	}

	cmd.AddCommand(createCmd, getCmd)

	return cmd
}

func transactionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transaction",
		Short: "Transaction operations",
	}

	var (
		id      string
		name    string
		entries []string
	)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a transaction",
		Long: `Create a transaction from one or more --entry flags, each formatted as
accountId:direction:amount[:currency], e.g. --entry 6b3f...:debit:100:USD`,
		Run: func(cmd *cobra.Command, args []string) {
			parsed := make([]map[string]any, 0, len(entries))
			for _, raw := range entries {
				entry, err := parseEntry(raw)
				if err != nil {
					fmt.Printf("invalid --entry %q: %v\n", raw, err)
					os.Exit(1)
				}
				parsed = append(parsed, entry)
			}

			body := map[string]any{"entries": parsed}
			if id != "" {
				body["id"] = id
			}
			if name != "" {
				body["name"] = name
			}
			post("/transactions", body)
		},
	}
	createCmd.Flags().StringVar(&id, "id", "", "Transaction id (UUID, generated when omitted)")
	createCmd.Flags().StringVar(&name, "name", "", "Display name")
	createCmd.Flags().StringArrayVar(&entries, "entry", nil, "Entry as accountId:direction:amount[:currency] (repeatable)")
	createCmd.MarkFlagRequired("entry")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get a transaction by id",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/transactions/" + args[0])
		},
	}

	cmd.AddCommand(createCmd, getCmd)

	return cmd
}

func parseEntry(raw string) (map[string]any, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return nil, fmt.Errorf("want accountId:direction:amount[:currency]")
	}

	amount, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("amount must be an integer")
	}

	entry := map[string]any{
		"account_id": parts[0],
		"direction":  parts[1],
		"amount":     amount,
	}
	if len(parts) == 4 {
		entry["currency"] = parts[3]
	}

	return entry, nil
}

func post(path string, body map[string]any) {
	payload, _ := json.Marshal(body)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func get(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Printf("Status: %d\n%s\n", resp.StatusCode, string(body))
		return
	}

	fmt.Printf("Status: %d\n%s\n", resp.StatusCode, pretty.String())

	if resp.StatusCode >= http.StatusBadRequest {
		os.Exit(1)
	}
}
