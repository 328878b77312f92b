package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jhoicas/definition-generator/internal/domain/schema"
)

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema [version]",
		Short: "Muestra el contrato de una versión como JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var flag string
			if len(args) == 1 {
				flag = args[0]
			}
			v, err := a.version(flag)
			if err != nil {
				return err
			}
			c, err := schema.Describe(v)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(c)
		},
	}
}
