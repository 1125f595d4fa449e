package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/claude-code-profiles/internal/ccp"
	"github.com/example/claude-code-profiles/internal/ccp/domain"
)

// NewRootCommand constructs the root Cobra command for ccp. Invoked without a
// subcommand it runs the interactive profile selector.
func NewRootCommand(svc *ccp.Service, prompter Prompter, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ccp",
		Short:         "Claude Code Profiles",
		Long:          "ccp manages named configuration profiles for Claude Code settings.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, svc, prompter)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.AddCommand(newInitCommand(svc))
	cmd.AddCommand(newListCommand(svc))
	cmd.AddCommand(newCurrentCommand(svc))
	cmd.AddCommand(newUseCommand(svc, prompter))
	cmd.AddCommand(newCreateCommand(svc))
	cmd.AddCommand(newDeleteCommand(svc, prompter))
	cmd.AddCommand(newCopyCommand(svc))
	cmd.AddCommand(newRenameCommand(svc))
	cmd.AddCommand(newConfigureCommand(svc, prompter))
	cmd.AddCommand(newSetCommand(svc))
	cmd.AddCommand(newGetCommand(svc))
	cmd.AddCommand(newUnsetCommand(svc))
	cmd.AddCommand(newExportCommand(svc))
	cmd.AddCommand(newImportCommand(svc))
	cmd.AddCommand(newDiffCommand(svc))
	cmd.AddCommand(newBackupCommand(svc))
	cmd.AddCommand(newRestoreCommand(svc))

	return cmd
}

func runInteractive(cmd *cobra.Command, svc *ccp.Service, prompter Prompter) error {
	entries, err := svc.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("No profiles found. Run 'ccp init' to initialize."))
		return nil
	}

	names := make([]string, 0, len(entries))
	current := ""
	for _, entry := range entries {
		names = append(names, entry.Name)
		if entry.Current {
			current = entry.Name
		}
	}

	_, selected, err := prompter.Select("Select profile", names, current)
	if err != nil {
		return err
	}
	if selected == current {
		fmt.Fprintf(cmd.OutOrStdout(), "· Already on '%s'\n", color.CyanString(selected))
		return nil
	}
	if err := svc.Use(selected); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Switched to profile '%s'\n", okMark(), color.CyanString(selected))
	return nil
}

func newInitCommand(svc *ccp.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the profiles directory structure",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := svc.Init()
			if err != nil {
				return err
			}
			switch {
			case result.CreatedDefault && result.FromSettings:
				fmt.Fprintf(cmd.OutOrStdout(), "%s Created default profile from existing settings\n", okMark())
			case result.CreatedDefault:
				fmt.Fprintf(cmd.OutOrStdout(), "%s Initialized with empty default profile\n", okMark())
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%s Profiles directory already initialized\n", okMark())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  Profiles dir: %s\n", result.ProfilesDir)
			fmt.Fprintf(cmd.OutOrStdout(), "  Backups dir: %s\n", result.BackupsDir)
			return nil
		},
	}
}

func newListCommand(svc *ccp.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all available profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := svc.List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("No profiles found. Run 'ccp init' to initialize."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Available profiles:")
			for _, entry := range entries {
				if entry.Current {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", color.GreenString("→"), color.GreenString(entry.Name))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", entry.Name)
				}
			}
			return nil
		},
	}
}

func newCurrentCommand(svc *ccp.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show current active profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := svc.Current()
			if err != nil {
				return err
			}
			if name == "" {
				fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("No profile selected. Run 'ccp init' or 'ccp use <profile>'"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString(name))
			return nil
		},
	}
}

func newUseCommand(svc *ccp.Service, prompter Prompter) *cobra.Command {
	return &cobra.Command{
		Use:   "use [name]",
		Short: "Switch to a profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				entries, err := svc.List()
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					return errors.New("no profiles found. Run 'ccp init' to initialize")
				}
				names := make([]string, 0, len(entries))
				current := ""
				for _, entry := range entries {
					names = append(names, entry.Name)
					if entry.Current {
						current = entry.Name
					}
				}
				_, name, err = prompter.Select("Select profile to activate", names, current)
				if err != nil {
					return err
				}
			}
			if err := svc.Use(name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Switched to profile '%s'\n", okMark(), color.CyanString(name))
			return nil
		},
	}
}

func newCreateCommand(svc *ccp.Service) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := svc.Create(args[0], from)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Created profile '%s' from %s\n", okMark(), color.CyanString(args[0]), source)
			return nil
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "Copy settings from existing profile")
	return cmd
}

func newDeleteCommand(svc *ccp.Service, prompter Prompter) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if name == ccp.DefaultProfileName && !force {
				return errors.New("cannot delete 'default' profile. Use --force to override")
			}
			if !force {
				confirm, err := prompter.Confirm(fmt.Sprintf("Delete profile '%s'?", name), false)
				if err != nil {
					return err
				}
				if !confirm {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}
			switchedTo, err := svc.Delete(name)
			if err != nil {
				return err
			}
			if switchedTo != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Switched to profile '%s'\n", okMark(), color.CyanString(switchedTo))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted profile '%s'\n", okMark(), name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}

func newCopyCommand(svc *ccp.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <src> <dst>",
		Short: "Copy a profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := svc.Copy(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Copied '%s' to '%s'\n", okMark(), args[0], color.CyanString(args[1]))
			return nil
		},
	}
}

func newRenameCommand(svc *ccp.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := svc.Rename(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Renamed '%s' to '%s'\n", okMark(), args[0], color.CyanString(args[1]))
			return nil
		},
	}
}

func newExportCommand(svc *ccp.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "export [name]",
		Short: "Export profile to stdout as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			data, _, err := svc.Export(arg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newImportCommand(svc *ccp.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "import <name>",
		Short: "Import profile from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := svc.Import(args[0], cmd.InOrStdin()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s Imported profile '%s'\n", okMark(), color.CyanString(args[0]))
			return nil
		},
	}
}

func newBackupCommand(svc *ccp.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "backup [name]",
		Short: "Create a backup of current settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			backupName, path, err := svc.Backup(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Created backup '%s'\n", okMark(), color.CyanString(backupName))
			fmt.Fprintf(cmd.OutOrStdout(), "  Path: %s\n", path)
			return nil
		},
	}
}

func newRestoreCommand(svc *ccp.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup>",
		Short: "Restore settings from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := svc.Restore(args[0])
			if err != nil {
				if errors.Is(err, domain.ErrBackupNotFound) {
					backups, listErr := svc.ListBackups()
					if listErr == nil && len(backups) > 0 {
						fmt.Fprintln(cmd.OutOrStdout(), "Available backups:")
						for _, b := range backups {
							fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", b)
						}
					}
				}
				return err
			}
			if result.AutoBackup != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s Created auto-backup '%s'\n", infoMark(), result.AutoBackup)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Restored from '%s'\n", okMark(), color.CyanString(result.From))
			return nil
		},
	}
}

func okMark() string   { return color.GreenString("✓") }
func warnMark() string { return color.YellowString("!") }
func infoMark() string { return color.BlueString("ℹ") }
