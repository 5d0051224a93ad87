/*
Copyright © 2025 The wireframe authors
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/config"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/llm"
)

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(config.EnvPrefix)                   // e.g., WIREFRAME_LLM_PROVIDER
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // llm.provider -> LLM_PROVIDER
	viper.AutomaticEnv()

	cfgFileFlag := viper.GetString("config")
	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		viper.SetConfigName(config.ConfigFileName) // .wireframe.yaml
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) && cfgFileFlag == "" {
		// Fall back to the file written by `config set-llm`.
		if global, gerr := config.GlobalConfigFile(); gerr == nil {
			if ok, _ := afero.Exists(appFs, global); ok {
				viper.SetConfigFile(global)
				err = viper.ReadInConfig()
			}
		}
	}

	switch {
	case err == nil:
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	case errors.As(err, &notFound):
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
		}
	default:
		if cfgFileFlag != "" && os.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			return
		}
		fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
	}
}

// configCmd is the parent config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration (API keys are masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		llmCfg, err := config.LoadLLMConfig()
		if err != nil {
			return err
		}
		serverCfg, err := config.LoadServerConfig()
		if err != nil {
			return err
		}
		telCfg, err := config.LoadTelemetryConfig()
		if err != nil {
			return err
		}
		genCfg, err := config.LoadGenerateConfig()
		if err != nil {
			return err
		}

		file := viper.ConfigFileUsed()
		if file == "" {
			file = "(none)"
		}
		fmt.Fprintf(out, "config file:      %s\n", file)
		fmt.Fprintf(out, "llm.provider:     %s\n", llmCfg.Provider)
		fmt.Fprintf(out, "llm.model:        %s\n", llmCfg.Model)
		fmt.Fprintf(out, "llm.apiKey:       %s\n", maskKey(llmCfg.APIKey))
		if llmCfg.BaseURL != "" {
			fmt.Fprintf(out, "llm.baseURL:      %s\n", llmCfg.BaseURL)
		}
		if llmCfg.Endpoint != "" {
			fmt.Fprintf(out, "llm.endpoint:     %s\n", llmCfg.Endpoint)
		}
		fmt.Fprintf(out, "llm.timeout:      %s\n", llmCfg.Timeout)
		fmt.Fprintf(out, "server.addr:      %s\n", serverCfg.Addr())
		fmt.Fprintf(out, "generate.delay:   %s\n", genCfg.Delay)
		fmt.Fprintf(out, "telemetry:        %t\n", telCfg.Enabled)
		return nil
	},
}

var configSetLLMCmd = &cobra.Command{
	Use:   "set-llm <provider> [model]",
	Short: "Save the LLM provider, model and API key to the global config",
	Long: `Save the LLM provider, model and optionally an API key to
~/.wireframe/config.yaml. Other keys in the file are kept.

Providers: openai, ollama, anthropic, gemini, http`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := args[0]
		model := ""
		if len(args) > 1 {
			model = args[1]
		}
		key, _ := cmd.Flags().GetString("api-key")

		path, err := config.GlobalConfigFile()
		if err != nil {
			return fmt.Errorf("locate config dir: %w", err)
		}
		if err := config.SaveLLMConfig(appFs, path, provider, model, key); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		if model == "" {
			if p, err := llm.ValidateProvider(provider); err == nil {
				model = llm.DefaultModelForProvider(p)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s (%s) to %s\n", provider, model, path)
		return nil
	},
}

func maskKey(key string) string {
	switch {
	case key == "":
		return "(not set)"
	case len(key) <= 8:
		return "****"
	default:
		return key[:4] + "…" + key[len(key)-4:]
	}
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetLLMCmd)
	configSetLLMCmd.Flags().String("api-key", "", "API key to store for this provider")
}
