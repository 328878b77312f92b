package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/spf13/cobra"

	"github.com/jhoicas/definition-generator/internal/application/dto"
	"github.com/jhoicas/definition-generator/internal/application/usecase"
	"github.com/jhoicas/definition-generator/internal/domain"
	"github.com/jhoicas/definition-generator/internal/domain/schema"
	"github.com/jhoicas/definition-generator/internal/infrastructure/postgres"
)

// historyRow fila del export CSV. Result no se exporta.
type historyRow struct {
	ID              string    `csv:"id"`
	CreatedAt       time.Time `csv:"created_at"`
	Provider        string    `csv:"provider"`
	Model           string    `csv:"model"`
	Locale          string    `csv:"locale"`
	Language        string    `csv:"language"`
	Industry        string    `csv:"industry"`
	SchemaVersion   string    `csv:"schema_version"`
	Status          string    `csv:"status"`
	DurationSeconds float64   `csv:"duration_seconds"`
	ArchiveKey      string    `csv:"archive_key"`
	Error           string    `csv:"error"`
}

func newHistoryCmd(a *app) *cobra.Command {
	var page dto.PageRequest
	var asCSV bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Lista el historial de generaciones (requiere DATABASE_URL)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.cfg.DB.Enabled() {
				return domain.ErrHistoryDisabled
			}
			pool, err := postgres.NewPool(cmd.Context(), a.cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			uc := usecase.NewDefinitionUseCase(nil, usecase.DefinitionOptions{
				Version: schema.Version(a.cfg.Generation.SchemaVersion),
			}, postgres.NewGenerationRepository(pool), nil, a.log)
			res, err := uc.List(cmd.Context(), page)
			if err != nil {
				return err
			}
			if asCSV {
				return writeHistoryCSV(cmd.OutOrStdout(), res.Items)
			}
			return writeHistoryTable(cmd.OutOrStdout(), res.Items)
		},
	}
	cmd.Flags().IntVar(&page.Limit, "limit", 20, "Máximo de registros (hasta 100)")
	cmd.Flags().IntVar(&page.Offset, "offset", 0, "Desplazamiento")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "Salida CSV")
	return cmd
}

func toHistoryRows(items []dto.GenerationDTO) []historyRow {
	rows := make([]historyRow, len(items))
	for i, g := range items {
		rows[i] = historyRow{
			ID:              g.ID,
			CreatedAt:       g.CreatedAt,
			Provider:        g.Provider,
			Model:           g.Model,
			Locale:          g.Locale,
			Language:        g.Language,
			Industry:        g.Industry,
			SchemaVersion:   g.SchemaVersion,
			Status:          g.Status,
			DurationSeconds: g.DurationSeconds,
			ArchiveKey:      g.ArchiveKey,
			Error:           g.Error,
		}
	}
	return rows
}

// writeHistoryCSV escribe cabecera y filas; con cero filas solo la cabecera.
func writeHistoryCSV(w io.Writer, items []dto.GenerationDTO) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	if err := enc.EncodeHeader(historyRow{}); err != nil {
		return err
	}
	for _, row := range toHistoryRows(items) {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeHistoryTable(w io.Writer, items []dto.GenerationDTO) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tPROVIDER\tLOCALE\tINDUSTRY\tVERSION\tSTATUS\tSECONDS")
	for _, g := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%.2f\n",
			g.ID, g.CreatedAt.Format(time.RFC3339), g.Provider, g.Locale, g.Industry, g.SchemaVersion, g.Status, g.DurationSeconds)
	}
	return tw.Flush()
}
