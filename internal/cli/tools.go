// internal/cli/tools.go
package opsdeck

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/opsdeck/opsdeck/internal/catalog"
)

var toolName = color.New(color.FgCyan, color.Bold).SprintFunc()
var paramName = color.New(color.FgGreen).SprintFunc()

// toolsCmd represents the 'tools' command, which prints the tool catalog.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools exposed to the model",
	Run: func(cmd *cobra.Command, args []string) {
		tools := catalog.Default().Tools()
		if GetConfig().Debug {
			for _, tool := range tools {
				pp.Println(tool)
			}
			return
		}
		for _, tool := range tools {
			fmt.Printf("%s: %s\n", toolName(tool.Name), tool.Description)
			for _, name := range sortedParamNames(tool) {
				fmt.Printf("    %s: %s\n", paramName(name), paramDescription(tool, name))
			}
			fmt.Println()
		}
	},
}

func sortedParamNames(tool catalog.Descriptor) []string {
	props, _ := tool.Parameters["properties"].(map[string]any)
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func paramDescription(tool catalog.Descriptor, name string) string {
	props, _ := tool.Parameters["properties"].(map[string]any)
	param, _ := props[name].(map[string]any)
	desc, _ := param["description"].(string)
	return desc
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
