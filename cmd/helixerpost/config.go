package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/TonyBolger/HelixerPost/internal/pipeline"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage helixerpost configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.helixerpost.yaml.",
		Example: `  helixerpost config                        # show all config
  helixerpost config set hmm.retain 0.2     # set the fusion retain fraction
  helixerpost config get window.size        # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(args[0])
		},
	}
}

func runConfigShow() error {
	settings := viper.AllSettings()
	if len(settings) == 0 {
		fmt.Println("# No configuration set. Config file: ~/.helixerpost.yaml")
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func runConfigSet(key, value string) error {
	switch value {
	case "true", "yes", "on":
		viper.Set(key, true)
	case "false", "no", "off":
		viper.Set(key, false)
	default:
		viper.Set(key, value)
	}

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".helixerpost.yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func runConfigGet(key string) error {
	val := viper.Get(key)
	if val == nil {
		return newUsageError("key %q is not set", key)
	}
	fmt.Println(val)
	return nil
}

// pipelineConfigFromViper overlays onto cfg any tunable persisted via
// `config set`. annotate/rate apply it before their own flags, so an
// explicit flag on the command line still wins over a persisted value.
func pipelineConfigFromViper(cfg pipeline.Config) pipeline.Config {
	if viper.IsSet("window.size") {
		cfg.Window.WindowSize = viper.GetInt("window.size")
	}
	if viper.IsSet("window.edge_threshold") {
		cfg.Window.EdgeThreshold = viper.GetFloat64("window.edge_threshold")
	}
	if viper.IsSet("window.peak_threshold") {
		cfg.Window.PeakThreshold = viper.GetFloat64("window.peak_threshold")
	}
	if viper.IsSet("hmm.min_coding_length") {
		cfg.MinCodingLength = viper.GetInt("hmm.min_coding_length")
	}
	if viper.IsSet("hmm.start_weight") {
		cfg.HMM.StartWeight = viper.GetFloat64("hmm.start_weight")
	}
	if viper.IsSet("hmm.stop_weight") {
		cfg.HMM.StopWeight = viper.GetFloat64("hmm.stop_weight")
	}
	if viper.IsSet("hmm.donor_weight") {
		cfg.HMM.DonorWeight = viper.GetFloat64("hmm.donor_weight")
	}
	if viper.IsSet("hmm.acceptor_weight") {
		cfg.HMM.AcceptorWeight = viper.GetFloat64("hmm.acceptor_weight")
	}
	if viper.IsSet("hmm.retain") {
		cfg.Fusion.Retain = viper.GetFloat64("hmm.retain")
	}
	return cfg
}
