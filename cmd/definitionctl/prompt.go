package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/definition-generator/internal/application/dto"
	"github.com/jhoicas/definition-generator/internal/domain/locale"
	"github.com/jhoicas/definition-generator/internal/domain/prompt"
)

func newPromptCmd(a *app) *cobra.Command {
	var version, localeCode, industry, basePath string
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Imprime la instrucción que se enviaría al proveedor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.version(version)
			if err != nil {
				return err
			}
			base, err := readOptional(basePath)
			if err != nil {
				return err
			}
			text, err := prompt.Compile(prompt.Input{
				Version:        v,
				Language:       locale.Resolve(localeCode),
				Industry:       industry,
				BaseDefinition: base,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().StringVarP(&version, "version", "v", "", "Versión del contrato (por defecto SCHEMA_VERSION)")
	cmd.Flags().StringVarP(&localeCode, "locale", "l", dto.DefaultLocale, "Locale del tenant (ru, es-ES, en-US...)")
	cmd.Flags().StringVarP(&industry, "industry", "i", dto.DefaultIndustry, "Industria del tenant")
	cmd.Flags().StringVarP(&basePath, "base", "b", "", "Fichero con la definición base ('-' para stdin)")
	return cmd
}

// readOptional lee path ("-" = stdin). Un path vacío devuelve "".
func readOptional(path string) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		raw, err := io.ReadAll(os.Stdin)
		return string(raw), err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("leer %s: %w", path, err)
	}
	return string(raw), nil
}
