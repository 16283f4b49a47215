package cli

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/dshills/censor/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	flagInitForce    bool
	flagShowDefaults bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage censor configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !flagInitForce {
			fmt.Fprintf(os.Stderr, "Config file already exists at %s (use --force to overwrite)\n", path)
			return nil
		}
		if err := config.Save(config.Default()); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Config file created at %s\n", path)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one effective configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(nil)
		if err != nil {
			return err
		}
		v, err := config.GetField(cfg, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: "Set a configuration value in the config file. Keys: secrets, redact, reduceArrays,\n" +
		"format, inputFormat, maxDepth, workers, cache.enabled, cache.dir, cache.ttlSeconds,\n" +
		"logLevel, logFile.\n\n" +
		"Secrets are checked before saving, so a pattern that does not compile is rejected.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile()
		if err != nil {
			// If no config file, start from defaults
			cfg = config.Default()
		}
		if err := setConfigValue(&cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Set %s = %s\n", args[0], args[1])
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if !flagShowDefaults {
			var err error
			if cfg, err = config.Load(nil); err != nil {
				return err
			}
		}
		return writeConfig(os.Stdout, cfg)
	},
}

// setConfigValue applies key=value and rejects redaction settings the
// redactor cannot be built from.
func setConfigValue(cfg *config.Config, key, value string) error {
	if err := config.SetField(cfg, key, value); err != nil {
		return err
	}
	switch key {
	case "secrets", "redact", "reduceArrays":
		trial := config.Default()
		if err := config.SetField(&trial, key, value); err != nil {
			return err
		}
		if _, err := buildRedactor(trial); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func writeConfig(w io.Writer, cfg config.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func init() {
	configInitCmd.Flags().BoolVar(&flagInitForce, "force", false, "Overwrite an existing config file")
	configShowCmd.Flags().BoolVar(&flagShowDefaults, "defaults", false, "Show built-in defaults instead of the effective config")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
}
