package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/agenda/internal/batch"
	"github.com/mesh-intelligence/agenda/pkg/agenda"
)

// applyOutput is the JSON shape printed by apply --json.
type applyOutput struct {
	Results []batch.Result `json:"results"`
	Failed  int            `json:"failed"`
	State   batch.State    `json:"state"`
}

func newApplyCmd(a *app) *cobra.Command {
	var keepGoing bool

	cmd := &cobra.Command{
		Use:   "apply <file|->",
		Short: "Apply an operation script to fresh registries",
		Long: `Apply reads a JSONL operation script and runs every operation against a
fresh set of registries, then prints one result per operation followed by the
final registry contents. Use "-" to read the script from stdin.

Each line is one operation:
  {"op":"add","kind":"task","name":"Write report","description":"Q3 numbers"}
  {"op":"edit","kind":"task","id":"0","description":"Q3 and Q4 numbers"}
  {"op":"delete","kind":"contact","id":"2"}

The run stops at the first failed operation unless --keep-going is set.
The exit code is 1 if any operation failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runApply(cmd, args[0], keepGoing)
		},
	}

	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "continue past failed operations")
	return cmd
}

func (a *app) runApply(cmd *cobra.Command, source string, keepGoing bool) error {
	cfg, err := a.config()
	if err != nil {
		return userError(err)
	}

	ops, err := readScript(cmd.InOrStdin(), source)
	if err != nil {
		return userError(err)
	}

	set, err := agenda.Open(cfg, a.logger)
	if err != nil {
		return sysError(fmt.Errorf("open registries: %w", err))
	}
	defer set.Close()

	results, failed := batch.Run(set, ops, keepGoing)
	a.logger.Info("script applied", "operations", len(results), "failed", failed, "backend", cfg.Backend)

	st, err := batch.Snapshot(set)
	if err != nil {
		return sysError(err)
	}

	out := cmd.OutOrStdout()
	if a.jsonMode {
		if err := writeJSON(out, applyOutput{Results: results, Failed: failed, State: st}); err != nil {
			return sysError(err)
		}
	} else {
		printResults(out, results)
		fmt.Fprintln(out)
		printState(out, st)
	}

	if failed > 0 {
		return userError(errFailed)
	}
	return nil
}

// readScript reads operations from the named file, or from stdin when
// source is "-".
func readScript(stdin io.Reader, source string) ([]batch.Op, error) {
	if source == "-" {
		return batch.Read(stdin)
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	ops, err := batch.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return ops, nil
}
