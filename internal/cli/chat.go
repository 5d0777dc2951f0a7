// internal/cli/chat.go
package opsdeck

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/opsdeck/opsdeck/internal/assist"
	"github.com/opsdeck/opsdeck/internal/catalog"
	"github.com/opsdeck/opsdeck/internal/mcp"
	"github.com/opsdeck/opsdeck/internal/providers/ollama"
	"github.com/opsdeck/opsdeck/internal/tui"
)

// chatCmd represents the 'chat' command, which starts an interactive session.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive assistant session",
	Long:  `The 'chat' command starts an interactive console session that answers Datadog questions by calling MCP tools through a language model.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := GetConfig()
		provider := ollama.New(cfg)
		defer provider.Close()

		assistant := assist.New(cfg, provider, catalog.Default(), mcp.NewClient(cfg))
		if err := tui.Run(context.Background(), cfg, assistant); err != nil {
			log.Fatalf("Error running chat program: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
