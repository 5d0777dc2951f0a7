// internal/cli/call.go
package opsdeck

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/opsdeck/opsdeck/internal/catalog"
	"github.com/opsdeck/opsdeck/internal/mcp"
)

var callArgsJSON string

var callErr = color.New(color.FgRed).SprintFunc()

// callCmd represents the 'call' command: one tool invocation through the
// bridge, no language model involved. Useful for checking the MCP server
// wiring before starting a chat session.
var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Invoke one MCP tool directly and print the normalized result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if _, ok := catalog.Default().Lookup(name); !ok {
			return fmt.Errorf("unknown tool %q (see 'opsdeck tools')", name)
		}

		arguments, err := parseCallArguments(callArgsJSON)
		if err != nil {
			return err
		}

		result := mcp.NewClient(GetConfig()).Call(context.Background(), name, arguments)
		rendered, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		if result.Err != "" {
			fmt.Println(callErr(string(rendered)))
			return nil
		}
		fmt.Println(string(rendered))
		return nil
	},
}

// parseCallArguments decodes the --args JSON object, defaulting to empty.
// Null-valued arguments are dropped; they are never sent over the wire.
func parseCallArguments(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var arguments map[string]any
	if err := json.Unmarshal([]byte(raw), &arguments); err != nil {
		return nil, fmt.Errorf("--args must be a JSON object: %w", err)
	}
	for key, value := range arguments {
		if value == nil {
			delete(arguments, key)
		}
	}
	return arguments, nil
}

func init() {
	callCmd.Flags().StringVar(&callArgsJSON, "args", "", "tool arguments as a JSON object")
	rootCmd.AddCommand(callCmd)
}
