package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/definition-generator/internal/domain/schema"
	"github.com/jhoicas/definition-generator/pkg/config"
	"github.com/jhoicas/definition-generator/pkg/logger"
)

// app estado compartido por los subcomandos; se carga en PersistentPreRunE.
type app struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "definitionctl",
		Short: "Herramientas del generador de definiciones de tenant",
		Long: `definitionctl comparte configuración (.env y variables de entorno) con la API.
Permite ver el contrato de cada versión, compilar la instrucción que recibe el proveedor,
validar documentos, generar definiciones sin levantar el servidor y exportar el historial.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.New(logger.Config{Env: "development", Level: cfg.App.LogLevel, Out: cmd.ErrOrStderr()})
			return nil
		},
	}
	root.AddCommand(
		newSchemaCmd(a),
		newPromptCmd(a),
		newValidateCmd(a),
		newGenerateCmd(a),
		newTokenCmd(a),
		newHistoryCmd(a),
	)
	return root
}

// version devuelve la versión pedida por flag o, si está vacía, la del despliegue.
func (a *app) version(flag string) (schema.Version, error) {
	if flag == "" {
		flag = a.cfg.Generation.SchemaVersion
	}
	return schema.ParseVersion(flag)
}
