package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/claude-code-profiles/internal/ccp"
)

// newConfigureCommand walks the user through the common settings fields:
// model, API base URL, API token and the always-thinking toggle.
func newConfigureCommand(svc *ccp.Service, prompter Prompter) *cobra.Command {
	var profileFlag string

	cmd := &cobra.Command{
		Use:   "configure [profile]",
		Short: "Interactive configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := profileFlag
			if len(args) == 1 {
				arg = args[0]
			}
			name, err := svc.ResolveProfileArg(arg)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuring profile '%s'\n", name)
			fmt.Fprintln(cmd.OutOrStdout(), "Press Enter to keep current value, or enter new value.")
			fmt.Fprintln(cmd.OutOrStdout())

			model, err := stringValue(svc, name, "model")
			if err != nil {
				return err
			}
			if input, err := prompter.Input("Model", model); err != nil {
				return err
			} else if input != "" {
				if _, _, err := svc.SetValue(name, "model", input); err != nil {
					return err
				}
			}

			baseURL, err := stringValue(svc, name, "env.ANTHROPIC_BASE_URL")
			if err != nil {
				return err
			}
			if input, err := prompter.Input("API Base URL (env.ANTHROPIC_BASE_URL)", baseURL); err != nil {
				return err
			} else if input != "" {
				if _, _, err := svc.SetValue(name, "env.ANTHROPIC_BASE_URL", input); err != nil {
					return err
				}
			}

			token, err := stringValue(svc, name, "env.ANTHROPIC_AUTH_TOKEN")
			if err != nil {
				return err
			}
			label := fmt.Sprintf("API Token [current: %s]", maskToken(token))
			if input, err := prompter.Input(label, token); err != nil {
				return err
			} else if input != "" {
				if _, _, err := svc.SetValue(name, "env.ANTHROPIC_AUTH_TOKEN", input); err != nil {
					return err
				}
			}

			thinking, err := boolValue(svc, name, "alwaysThinkingEnabled")
			if err != nil {
				return err
			}
			enabled, err := prompter.Confirm("Always thinking enabled?", thinking)
			if err != nil {
				return err
			}
			_, applied, err := svc.SetValue(name, "alwaysThinkingEnabled", enabled)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout())
			if applied {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration saved and applied\n", okMark())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration saved\n", okMark())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&profileFlag, "profile", "p", "", "Profile to configure (default: current)")
	return cmd
}

func stringValue(svc *ccp.Service, name, key string) (string, error) {
	value, found, _, err := svc.GetValue(name, key)
	if err != nil {
		return "", err
	}
	if !found {
		return "", nil
	}
	s, _ := value.(string)
	return s, nil
}

func boolValue(svc *ccp.Service, name, key string) (bool, error) {
	value, found, _, err := svc.GetValue(name, key)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	b, _ := value.(bool)
	return b, nil
}

// maskToken keeps the first six and last four characters of long tokens.
func maskToken(token string) string {
	if len(token) > 10 {
		return token[:6] + "..." + token[len(token)-4:]
	}
	return token
}
