package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// usageError marks a RunE failure as the user's mistake (bad arguments,
// missing files) rather than a runtime/invariant error, so main can map it
// to ExitUsage instead of ExitError.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func newUsageError(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func isUsageError(err error) bool {
	var ue *usageError
	return errors.As(err, &ue)
}

var verbose bool

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "helixerpost",
		Short:         "Decode per-base class/phase predictions into GFF3 gene models",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cobra.OnInitialize(func() {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".helixerpost")
		viper.SetConfigType("yaml")
		_ = viper.ReadInConfig()
	})

	cmd.AddCommand(newAnnotateCmd())
	cmd.AddCommand(newRateCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}
