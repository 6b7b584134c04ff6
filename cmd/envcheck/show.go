package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/kbukum/envcascade/config"
	"github.com/kbukum/envcascade/resolve"
	"github.com/kbukum/envcascade/util"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		flags  resolveFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show configuration keys and the layer each value came from",
		Long: `Show configuration keys and the layer each value came from.

Every declared key is resolved from the process environment, then the env
file, then the spec default. Secret values are masked.

Example:
  envcheck show --spec config.spec.yaml --folder deploy
  envcheck show --spec config.spec.yaml --file .env --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.resolve(cmd, &flags)
			if err != nil {
				return err
			}
			return showConfiguration(cmd.OutOrStdout(), m, output)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text or json)")
	return cmd
}

// showReport is the JSON form of show.
type showReport struct {
	Source string        `json:"source"`
	Trace  resolve.Trace `json:"trace"`
}

func showConfiguration(w io.Writer, m *config.Manager, output string) error {
	trace := m.MaskedTrace()

	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(showReport{Source: m.Source(), Trace: trace})
	case "text":
		_, err := io.WriteString(w, formatText(m.Source(), trace))
		return err
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func formatText(sourcePath string, trace resolve.Trace) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Env file: %s\n\n", sourcePath)
	fmt.Fprintf(&sb, "%-30s %-30s %s\n", "NAME", "VALUE", "SOURCE")
	fmt.Fprintf(&sb, "%-30s %-30s %s\n", "----", "-----", "------")

	for _, key := range util.SortedKeys(trace) {
		entry := trace[key]
		value := "(not set)"
		if entry.Resolved() {
			value = cast.ToString(entry.ResolvedValue)
		}
		layer := string(entry.ResolvedFrom)
		if entry.IsExtra {
			layer += " (extra)"
		}
		fmt.Fprintf(&sb, "%-30s %-30s %s\n", key, value, layer)
	}
	return sb.String()
}
