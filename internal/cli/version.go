package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/agenda/pkg/agenda"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the agenda version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.jsonMode {
				enc := json.NewEncoder(cmd.OutOrStdout())
				return enc.Encode(map[string]string{
					"version": agenda.Version,
					"module":  agenda.ModulePath,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "agenda v%s\nmodule: %s\n", agenda.Version, agenda.ModulePath)
			return nil
		},
	}
}
