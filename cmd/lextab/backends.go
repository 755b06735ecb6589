package main

import (
	"fmt"
	"os"

	"github.com/nihei9/lextab/backend"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "backends",
		Short:   "List the available backends",
		Example: `  lextab backends`,
		Args:    cobra.NoArgs,
		RunE:    runBackends,
	}
	rootCmd.AddCommand(cmd)
}

func runBackends(cmd *cobra.Command, args []string) error {
	for _, id := range backend.IDs() {
		b, err := backend.New(id)
		if err != nil {
			return err
		}
		cLike := ""
		if b.CLike() {
			cLike = " (C-like)"
		}
		fmt.Fprintf(os.Stdout, "%v\t.%v%v\n", id, b.Suffix(), cLike)
	}
	return nil
}
