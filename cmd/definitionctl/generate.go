package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/definition-generator/internal/application/dto"
	"github.com/jhoicas/definition-generator/internal/application/usecase"
	"github.com/jhoicas/definition-generator/internal/domain/schema"
	infraai "github.com/jhoicas/definition-generator/internal/infrastructure/ai"
)

func newGenerateCmd(a *app) *cobra.Command {
	var req dto.GenerateDefinitionRequest
	var basePath string
	var validate bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Genera una definición llamando directamente al proveedor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			base, err := readOptional(basePath)
			if err != nil {
				return err
			}
			if base != "" {
				raw, err := json.Marshal(base)
				if err != nil {
					return err
				}
				req.Definition = raw
			}
			uc := usecase.NewDefinitionUseCase(infraai.NewRegistry(a.cfg.AI), usecase.DefinitionOptions{
				Version:        schema.Version(a.cfg.Generation.SchemaVersion),
				Timeout:        a.cfg.Generation.Timeout,
				ValidateOutput: validate || a.cfg.Generation.ValidateOutput,
			}, nil, nil, a.log)

			res, err := uc.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Result)
			for _, v := range res.Violations {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s [%s]: %s\n", v.Path, v.Rule, v.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.Provider, "provider", "p", dto.DefaultProvider, "anthropic | google | openai")
	cmd.Flags().StringVarP(&req.Locale, "locale", "l", dto.DefaultLocale, "Locale del tenant")
	cmd.Flags().StringVarP(&req.Industry, "industry", "i", dto.DefaultIndustry, "Industria del tenant")
	cmd.Flags().StringVarP(&basePath, "base", "b", "", "Fichero con la definición base ('-' para stdin)")
	cmd.Flags().BoolVar(&validate, "validate", false, "Valida la salida contra el contrato")
	return cmd
}
