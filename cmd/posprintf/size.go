package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjaus/posprintf/internal/batch"
)

func newSizeCmd(a *app) *cobra.Command {
	var charsetName string
	cmd := &cobra.Command{
		Use:   "size FORMAT [ARG...]",
		Short: "Print the buffer size a render needs, terminator included",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.printer("")
			if err != nil {
				return err
			}
			typed, err := batch.ConvertArgs(args[0], args[1:], a.charset(charsetName))
			if err != nil {
				return err
			}
			n, err := p.Size(args[0], typed...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
			return err
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&charsetName, "charset", "", "charset for %s arguments (ascii|latin1|cp1252|cp437)")
	return cmd
}
