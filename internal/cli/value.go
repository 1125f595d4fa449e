package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/claude-code-profiles/internal/ccp"
	"github.com/example/claude-code-profiles/internal/ccp/profile"
)

func newSetCommand(svc *ccp.Service) *cobra.Command {
	var profileArg string

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Set a configuration value by dotted key path, e.g. \"model\" or \"env.ANTHROPIC_BASE_URL\".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, raw := args[0], args[1]
			name, _, err := svc.SetValue(profileArg, key, ccp.ParseValue(raw))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Set %s=%s in '%s'\n", okMark(), color.CyanString(key), raw, name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&profileArg, "profile", "p", "", "Profile to modify (default: current)")
	return cmd
}

func newGetCommand(svc *ccp.Service) *cobra.Command {
	var profileArg string

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, found, _, err := svc.GetValue(profileArg, args[0])
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintln(cmd.OutOrStdout(), color.New(color.Faint).Sprint("(not set)"))
				return nil
			}
			data, err := profile.MarshalPretty(value)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&profileArg, "profile", "p", "", "Profile to read from (default: current)")
	return cmd
}

func newUnsetCommand(svc *ccp.Service) *cobra.Command {
	var profileArg string

	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Unset/remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			removed, _, name, err := svc.UnsetValue(profileArg, key)
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Removed '%s' from '%s'\n", okMark(), color.CyanString(key), name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Key '%s' not found in '%s'\n", warnMark(), key, name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&profileArg, "profile", "p", "", "Profile to modify (default: current)")
	return cmd
}
