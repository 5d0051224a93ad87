/*
Copyright © 2025 The wireframe authors
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/config"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/logger"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.1.0"

	// appFs is the filesystem used for every file the CLI reads or writes.
	appFs afero.Fs = afero.NewOsFs()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wireframe",
	Short: "Generate app wireframes from a product description",
	Long: `wireframe turns a plain-language product description into a structured
wireframe document: app theme, navigation, screens and typed UI components.

The document is produced by a language model, repaired if its JSON is
malformed, completed with defaults and validated. Invalid documents are still
returned together with their validation report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logCfg, err := config.LoadLogConfig()
		if err != nil {
			return err
		}
		if _, err := logger.Setup(cmd.ErrOrStderr(), logCfg.Level, viper.GetBool("verbose")); err != nil {
			return err
		}
		logger.SetVersion(version)
		logger.SetCommand(cmd.CommandPath())
		if dir, err := config.GetGlobalConfigDir(); err == nil {
			logger.SetBasePath(dir)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer logger.HandlePanic()

	if err := rootCmd.Execute(); err != nil {
		PrintError(userMessage(err), err)
		os.Exit(1)
	}
}

// notifyContext returns cmd's context, cancelled on SIGINT or SIGTERM.
func notifyContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.wireframe.yaml, $HOME/.wireframe.yaml or ~/.wireframe/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
