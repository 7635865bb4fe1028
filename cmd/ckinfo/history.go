package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the recorded reports of a library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			storage, err := newStorage(conf.Inventory)
			if err != nil {
				return err
			}
			defer storage.CloseStorage()
			module := conf.Module.Path
			if all {
				module = ""
			}
			snapshots, err := storage.GetSnapshots(module)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tRECORDED\tMODULE\tCRYPTOKI\tMANUFACTURER\tLIBRARY")
			for _, s := range snapshots {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s %s\n",
					s.ID, s.RecordedAt.Format(time.RFC3339), s.Module,
					s.Info.CryptokiVersion, s.Info.Manufacturer(),
					s.Info.Description(), s.Info.LibraryVersion)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "list the reports of every library")
	return cmd
}
