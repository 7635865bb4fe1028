package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/niclabs/ckabi/ck"
)

var families = map[string]ck.Flagged{
	"initargs": &ck.InitializeArgs{},
	"info":     &ck.Info{},
}

func newFlagsCmd() *cobra.Command {
	var family string
	cmd := &cobra.Command{
		Use:   "flags <value>...",
		Short: "Render a flags value with the names of its structure",
		Example: `  ckinfo flags 3
  ckinfo flags 0x2 CKF_LIBRARY_CANT_CREATE_OS_THREADS
  ckinfo flags --family info 0xff`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := families[family]
			if !ok {
				return fmt.Errorf("unknown family %q", family)
			}
			v, err := s.FlagFamily().ParseFlags(args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "0x%08x %s\n", v, ck.F2S(s, v))
			return nil
		},
	}
	cmd.Flags().StringVar(&family, "family", "initargs", "flag family: initargs or info")
	return cmd
}
