package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/searchpro/settings/engine/core"
	"github.com/searchpro/settings/engine/store"
)

// DefaultsCmd prints the factory-default configuration tree.
func DefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the factory-default configuration as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd, store.FactoryDefaults())
		},
	}
}

// ValidateCmd checks a configuration document against the structural and
// content rules without touching the persisted state.
func ValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a configuration JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			var candidate core.ConfigTree
			if err := json.Unmarshal(data, &candidate); err != nil {
				return fmt.Errorf("%s is not a JSON object: %w", args[0], err)
			}
			if !store.New(nil).LoadTree(candidate) {
				return fmt.Errorf("%s was rejected, see the log for details", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
			return nil
		},
	}
}

// ResetCmd restores one section of the persisted configuration to factory
// defaults.
func ResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <section>",
		Short: "Reset a configuration section to factory defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			session, err := buildSession(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer session.Close()
			if !session.ResetSection(args[0]) {
				return fmt.Errorf("no factory defaults for section %q", args[0])
			}
			if err := session.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset %s to defaults\n", args[0])
			return nil
		},
	}
}

// GetCmd reads one dot-path from the persisted configuration.
func GetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Read a value from the persisted configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			session, err := buildSession(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer session.Close()
			value, ok := session.GetNestedProperty(args[0])
			if !ok {
				return fmt.Errorf("no value at %q", args[0])
			}
			return printJSON(cmd, value)
		},
	}
}

// SetCmd writes one dot-path in the persisted configuration. The value is
// decoded as JSON when possible and treated as a plain string otherwise.
func SetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Write a value into the persisted configuration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			session, err := buildSession(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer session.Close()
			var value any
			if err := json.Unmarshal([]byte(args[1]), &value); err != nil {
				value = args[1]
			}
			if !session.UpdateField(args[0], value) {
				return fmt.Errorf("write to %q was declined", args[0])
			}
			if err := session.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "set %s\n", args[0])
			return nil
		},
	}
}

// ImportCmd loads a configuration document into the persisted state, either
// replacing matching sections or deep-merging with --merge.
func ImportCmd() *cobra.Command {
	var merge bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a configuration JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			session, err := buildSession(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer session.Close()
			var applied bool
			if merge {
				applied = session.MergeJSON(data)
			} else {
				applied = session.LoadJSON(data)
			}
			if !applied {
				return fmt.Errorf("%s was rejected, see the log for details", args[0])
			}
			if err := session.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&merge, "merge", false, "deep-merge into the current configuration instead of replacing sections")
	return cmd
}

func printJSON(cmd *cobra.Command, value any) error {
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
