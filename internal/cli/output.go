package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mesh-intelligence/agenda/internal/batch"
)

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// printResults prints one line per operation result.
func printResults(w io.Writer, results []batch.Result) {
	for _, r := range results {
		target := string(r.Kind)
		if r.ID != "" {
			target += " " + r.ID
		}
		if r.Error != "" {
			fmt.Fprintf(w, "line %d: %s %s: error: %s\n", r.Line, r.Op, target, r.Error)
			continue
		}
		fmt.Fprintf(w, "line %d: %s %s: ok\n", r.Line, r.Op, target)
	}
}

// printState prints each registry as a table.
func printState(w io.Writer, st batch.State) {
	rows := make([][]string, 0, len(st.Appointments))
	for _, a := range st.Appointments {
		rows = append(rows, []string{a.ID(), a.Date().Format(time.RFC3339), a.Description()})
	}
	printTable(w, "Appointments", []string{"ID", "DATE", "DESCRIPTION"}, rows)

	rows = make([][]string, 0, len(st.Contacts))
	for _, c := range st.Contacts {
		rows = append(rows, []string{c.ID(), c.FirstName(), c.LastName(), c.Phone(), c.Address()})
	}
	printTable(w, "Contacts", []string{"ID", "FIRST", "LAST", "PHONE", "ADDRESS"}, rows)

	rows = make([][]string, 0, len(st.Tasks))
	for _, t := range st.Tasks {
		rows = append(rows, []string{t.ID(), t.Name(), t.Description()})
	}
	printTable(w, "Tasks", []string{"ID", "NAME", "DESCRIPTION"}, rows)
}

func printTable(w io.Writer, title string, header []string, rows [][]string) {
	fmt.Fprintf(w, "%s: %d\n", title, len(rows))
	if len(rows) == 0 {
		return
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()

	// Trim the padding tabwriter leaves on the last column.
	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, "  "+strings.TrimRight(line, " "))
	}
}
