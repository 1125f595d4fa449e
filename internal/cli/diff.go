package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/example/claude-code-profiles/internal/ccp"
)

func newDiffCommand(svc *ccp.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <profile1> <profile2>",
		Short: "Compare two profiles",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := svc.Diff(args[0], args[1])
			if err != nil {
				return err
			}
			if result.Identical {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Profiles are identical\n", color.GreenString("="))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Diff: %s vs %s\n\n",
				color.RedString(args[0]), color.GreenString(args[1]))
			renderLineDiff(cmd.OutOrStdout(), string(result.Left), string(result.Right))
			return nil
		},
	}
}

// renderLineDiff prints a line-oriented diff with -/+ markers.
func renderLineDiff(w io.Writer, left, right string) {
	dmp := diffmatchpatch.New()
	a, b, lineIndex := dmp.DiffLinesToChars(left, right)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineIndex)

	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				fmt.Fprintln(w, color.RedString("- %s", line))
			case diffmatchpatch.DiffInsert:
				fmt.Fprintln(w, color.GreenString("+ %s", line))
			default:
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
	}
}

func splitLines(text string) []string {
	trimmed := strings.TrimSuffix(text, "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
