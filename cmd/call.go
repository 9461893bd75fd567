package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
)

var callLog = logging.Logger("cmd")

var (
	callMethod string
	callBody   string
)

// callCmd represents the call command
var callCmd = &cobra.Command{
	Use:   "call <endpoint>",
	Short: "Call the backend API",
	Long: `Send one request to the backend API and print the resulting envelope.

The endpoint is appended to the backend base URL after a "/". The method is
one of GET, POST, PUT or DELETE in any letter case. The body, when given,
must be a JSON document; an omitted body is sent as {}.`,
	Example: `  workix-desktop call orders
  workix-desktop call orders/42 --method put --body '{"status":"closed"}'`,
	Args: cobra.ExactArgs(1),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)

	callCmd.Flags().StringVarP(&callMethod, "method", "X", "GET", "HTTP method (GET, POST, PUT, DELETE)")
	callCmd.Flags().StringVarP(&callBody, "body", "d", "", "JSON request body")
}

func runCall(cmd *cobra.Command, args []string) error {
	var body any
	if callBody != "" {
		if !json.Valid([]byte(callBody)) {
			return fmt.Errorf("--body is not valid JSON")
		}
		body = json.RawMessage(callBody)
	}

	app, _, err := newApp(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	endpoint := args[0]
	callLog.Debugw("Calling backend", "endpoint", endpoint, "method", callMethod)
	return printJSON(cmd, app.CallBackendAPI(ctx, endpoint, callMethod, body))
}
