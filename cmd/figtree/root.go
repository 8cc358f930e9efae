package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "figtree",
	Short: "figtree document inspector",
	Long:  "Parse figtree configuration files, report syntax errors and print their structure.",

	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "Debug output (lexer and parser tracing)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	viper.SetEnvPrefix("FIGTREE")
	viper.AutomaticEnv()
}

// debugLogger returns a logger writing to the command's stderr when --debug
// is set, and nil otherwise.
func debugLogger(cmd *cobra.Command) *slog.Logger {
	if !viper.GetBool("debug") {
		return nil
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
