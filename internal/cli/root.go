// Package cli implements the polaris-bootstrap command tree.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "polaris-bootstrap",
	Short: "Bootstrap a running Polaris catalog container",
	Long: `polaris-bootstrap provisions a freshly started Apache Polaris
container: it finds the container, recovers the bootstrap root
credentials from its log, obtains a management token and creates the
initial catalog, principal and role wiring. A verification notebook
is written into the working directory when the run completes.`,
	SilenceUsage: true,
}

// Execute runs the root command
// This is the entry point called by main
func Execute() error {
	rootCmd.Version = Version
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(credentialsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Bare invocation behaves like `run`
	rootCmd.RunE = runCmd.RunE
}

// newLogger builds the process logger from the configured level
func newLogger(level string) *logrus.Logger {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}
