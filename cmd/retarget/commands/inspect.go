package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/kevmal/retarget/internal/universe"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <manifest.yaml>",
	Short: "List the modules and types of a universe manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	u, err := universe.LoadManifest(args[0])
	if err != nil {
		return err
	}

	w := table.NewWriter()
	w.SetOutputMirror(os.Stdout)
	w.AppendHeader(table.Row{"Module", "Type", "Arity", "Notes"})
	for _, mod := range u {
		for _, t := range mod.AllTypes() {
			notes := ""
			switch {
			case t.Alias:
				notes = "alias"
			case t.Union != nil:
				notes = "union"
			}
			if mod.UsesSessionNaming() {
				if notes != "" {
					notes += ", "
				}
				notes += "session-named"
			}
			w.AppendRow(table.Row{mod.Name(), t.Name, t.Arity, notes})
		}
	}
	w.Render()
	return nil
}
