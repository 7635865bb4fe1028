package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/niclabs/ckabi/ck"
	"github.com/niclabs/ckabi/criptoki"
)

func newSelfTestCmd() *cobra.Command {
	var threads, iterations int
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Drive the Go mutex callbacks from native threads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := ck.NewMutexTable()
			if err := criptoki.RegisterMutexFuncs(table.Funcs()); err != nil {
				return err
			}
			counter, err := criptoki.SelfTest(criptoki.MutexArgs(0), threads, iterations)
			if err != nil {
				return err
			}
			want := int64(threads) * int64(iterations)
			fmt.Fprintf(cmd.OutOrStdout(), "threads=%d iterations=%d counter=%d live mutexes=%d\n",
				threads, iterations, counter, table.Len())
			if counter != want {
				return fmt.Errorf("lost updates: counter is %d, want %d", counter, want)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&threads, "threads", 8, fmt.Sprintf("native threads, at most %d", criptoki.MaxSelfTestThreads))
	cmd.Flags().IntVar(&iterations, "iterations", 1000, "lock and unlock rounds per thread")
	return cmd
}
