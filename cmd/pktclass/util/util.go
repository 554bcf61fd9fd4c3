package util

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

func DisableSortFlags(cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		cmd.InheritedFlags().SortFlags = false
		cmd.PersistentFlags().SortFlags = false
		cmd.Flags().SortFlags = false
	}
}

// NewTable returns a borderless table as used by every subcommand.
func NewTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.SeparatorsNone,
				Lines:      tw.LinesNone,
			},
		})),
		tablewriter.WithRowAlignment(tw.AlignCenter),
	)
}
