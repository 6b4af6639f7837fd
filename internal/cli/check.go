package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/agenda/pkg/types"
)

// checkFlags holds the field values passed to check.
type checkFlags struct {
	date        string
	description string
	name        string
	firstName   string
	lastName    string
	phone       string
	address     string
}

// fieldProblem is one failing field reported by check.
type fieldProblem struct {
	Field  string       `json:"field"`
	Reason types.Reason `json:"reason"`
	Error  string       `json:"error"`
}

func newCheckCmd(a *app) *cobra.Command {
	var f checkFlags

	cmd := &cobra.Command{
		Use:   "check <kind>",
		Short: "Validate field values without registering anything",
		Long: `Check validates the fields of one record and reports every failing field.
Fields not given are checked as empty.

Kinds and their fields:
  appointment  --date (RFC 3339) --description
  contact      --first-name --last-name --phone --address
  task         --name --description

The exit code is 1 if any field fails.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(types.KindAppointment), string(types.KindContact), string(types.KindTask)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := types.ParseKind(args[0])
			if err != nil {
				return userError(err)
			}
			if err := f.rejectForeign(cmd, kind); err != nil {
				return userError(err)
			}

			errs, err := f.fieldErrors(kind, time.Now())
			if err != nil {
				return userError(err)
			}

			problems := make([]fieldProblem, 0, len(errs))
			for _, e := range errs {
				p := fieldProblem{Error: e.Error()}
				var fe *types.InvalidFieldError
				if errors.As(e, &fe) {
					p.Field, p.Reason = fe.Field, fe.Reason
				}
				problems = append(problems, p)
			}

			out := cmd.OutOrStdout()
			if a.jsonMode {
				if err := writeJSON(out, problems); err != nil {
					return sysError(err)
				}
			} else if len(problems) == 0 {
				fmt.Fprintf(out, "%s: ok\n", kind)
			} else {
				for _, p := range problems {
					fmt.Fprintln(out, p.Error)
				}
			}

			if len(problems) > 0 {
				return userError(errFailed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&f.date, "date", "", "appointment date (RFC 3339)")
	cmd.Flags().StringVar(&f.description, "description", "", "appointment or task description")
	cmd.Flags().StringVar(&f.name, "name", "", "task name")
	cmd.Flags().StringVar(&f.firstName, "first-name", "", "contact first name")
	cmd.Flags().StringVar(&f.lastName, "last-name", "", "contact last name")
	cmd.Flags().StringVar(&f.phone, "phone", "", "contact phone number")
	cmd.Flags().StringVar(&f.address, "address", "", "contact address")
	return cmd
}

// kindFlags lists the flags each kind accepts.
var kindFlags = map[types.Kind][]string{
	types.KindAppointment: {"date", "description"},
	types.KindContact:     {"first-name", "last-name", "phone", "address"},
	types.KindTask:        {"name", "description"},
}

// rejectForeign fails if a field flag of another kind was set.
func (f *checkFlags) rejectForeign(cmd *cobra.Command, kind types.Kind) error {
	allowed := make(map[string]bool)
	for _, name := range kindFlags[kind] {
		allowed[name] = true
	}
	for _, names := range kindFlags {
		for _, name := range names {
			if !allowed[name] && cmd.Flags().Changed(name) {
				return fmt.Errorf("%s has no --%s field", kind, name)
			}
		}
	}
	return nil
}

func (f *checkFlags) fieldErrors(kind types.Kind, now time.Time) ([]error, error) {
	switch kind {
	case types.KindAppointment:
		var date time.Time
		if f.date != "" {
			d, err := time.Parse(time.RFC3339, f.date)
			if err != nil {
				return nil, fmt.Errorf("parse --date: %w", err)
			}
			date = d
		}
		return types.AppointmentRecord{Date: date, Description: f.description}.FieldErrors(now), nil
	case types.KindContact:
		return types.ContactRecord{
			FirstName: f.firstName,
			LastName:  f.lastName,
			Phone:     f.phone,
			Address:   f.address,
		}.FieldErrors(), nil
	default:
		return types.TaskRecord{Name: f.name, Description: f.description}.FieldErrors(), nil
	}
}
