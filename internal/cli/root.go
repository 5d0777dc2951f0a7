// internal/cli/root.go
package opsdeck

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/opsdeck/opsdeck/internal/appconfig"
	"github.com/opsdeck/opsdeck/internal/logging"
)

var (
	cfgFile       string
	currentConfig appconfig.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "opsdeck",
	Short: "opsdeck is a console assistant that answers Datadog questions through MCP tools",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := appconfig.Load(cfgFile)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return err
			}
			cfg = appconfig.Config{ConfigPath: cfgFile}
		}

		// File values become viper defaults, so a flag the user actually set
		// wins and everything else falls back to the file, then the zero
		// value. The request timeout has no flag; it comes from the file only.
		viper.SetDefault("debug", cfg.Debug)
		viper.SetDefault("logFile", cfg.LogFile)
		viper.SetDefault("model", cfg.Model)
		viper.SetDefault("ollamaUrl", cfg.OllamaURL)
		viper.SetDefault("mcpCommand", cfg.MCPCommand)
		viper.SetDefault("toolTimeout", cfg.ToolTimeout)
		viper.SetDefault("timeout", cfg.TimeoutSeconds)

		cfg.Debug = viper.GetBool("debug")
		cfg.LogFile = viper.GetString("logFile")
		cfg.Model = viper.GetString("model")
		cfg.OllamaURL = viper.GetString("ollamaUrl")
		cfg.MCPCommand = viper.GetStringSlice("mcpCommand")
		cfg.ToolTimeout = viper.GetInt("toolTimeout")
		cfg.TimeoutSeconds = viper.GetInt("timeout")
		currentConfig = cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")
	rootCmd.PersistentFlags().String("model", "", "Ollama model name")
	rootCmd.PersistentFlags().String("ollamaUrl", "", "Ollama base URL")
	rootCmd.PersistentFlags().StringSlice("mcpCommand", nil, "argv of the MCP server process")
	rootCmd.PersistentFlags().Int("toolTimeout", 0, "seconds to wait for one tool call (0 = default)")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
	_ = viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("ollamaUrl", rootCmd.PersistentFlags().Lookup("ollamaUrl"))
	_ = viper.BindPFlag("mcpCommand", rootCmd.PersistentFlags().Lookup("mcpCommand"))
	_ = viper.BindPFlag("toolTimeout", rootCmd.PersistentFlags().Lookup("toolTimeout"))
}

// GetConfig returns the merged application configuration for subcommands.
func GetConfig() appconfig.Config {
	return currentConfig
}
