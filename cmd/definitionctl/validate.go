package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/definition-generator/internal/application/dto"
	"github.com/jhoicas/definition-generator/internal/domain/schema"
)

func newValidateCmd(a *app) *cobra.Command {
	var version string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "validate <file|->",
		Short: "Valida una definición contra el contrato",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.version(version)
			if err != nil {
				return err
			}
			doc, err := readOptional(args[0])
			if err != nil {
				return err
			}
			c, err := schema.Describe(v)
			if err != nil {
				return err
			}
			violations := schema.Validate(c, []byte(doc))

			out := cmd.OutOrStdout()
			if asJSON {
				res := dto.ValidationResult{
					SchemaVersion: string(v),
					Valid:         len(violations) == 0,
					Violations:    dto.ToViolationDTOs(violations),
				}
				if res.Violations == nil {
					res.Violations = []dto.ViolationDTO{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else {
				for _, vi := range violations {
					fmt.Fprintln(out, vi.String())
				}
			}
			if len(violations) > 0 {
				return fmt.Errorf("%d incumplimientos del contrato %s", len(violations), v)
			}
			if !asJSON {
				fmt.Fprintf(out, "OK: la definición cumple el contrato %s\n", v)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&version, "version", "v", "", "Versión del contrato (por defecto SCHEMA_VERSION)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Salida en JSON")
	return cmd
}
