package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/censor/internal/config"
	"github.com/dshills/censor/internal/redact"
)

var checkCmd = &cobra.Command{
	Use:   "check <key>...",
	Short: "Report which keys the configured secrets would redact",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := make(map[string]string)
		if flagSecrets != "" {
			overrides["secrets"] = flagSecrets
		}
		cfg, err := config.Load(overrides)
		if err != nil {
			return err
		}
		r, err := buildRedactor(cfg)
		if err != nil {
			return err
		}
		if checkKeys(os.Stdout, r, args) {
			exitCode = ExitSecretKeys
		}
		return nil
	},
}

// checkKeys prints one line per key and reports whether any was a secret.
func checkKeys(w io.Writer, r *redact.Redactor, keys []string) bool {
	found := false
	for _, k := range keys {
		status := "clear"
		if r.IsSecret(k) {
			status = "secret"
			found = true
		}
		fmt.Fprintf(w, "%s\t%s\n", status, k)
	}
	return found
}

func init() {
	checkCmd.Flags().StringVar(&flagSecrets, "secrets", "", "Secret keys, comma-separated; /regexp/flags for patterns")
}
