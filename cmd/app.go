package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/workix/desktop/internal/desktop"
	"github.com/workix/desktop/pkg/client"
)

// newApp builds the command surface for one-shot CLI use. Front-end log
// lines go to the command's output streams.
func newApp(cmd *cobra.Command) (*desktop.App, *desktop.LogSink, error) {
	backend := GetConfig().Backend
	c, err := client.New(backend.BaseURL,
		client.WithTimeout(backend.Timeout),
		client.WithUserAgent(backend.UserAgent),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("creating backend client: %w", err)
	}

	sink := desktop.NewLogSink(cmd.OutOrStdout(), cmd.ErrOrStderr())
	return desktop.New(c, desktop.WithLogSink(sink)), sink, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
