package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/definition-generator/pkg/jwt"
)

func newTokenCmd(a *app) *cobra.Command {
	var subject string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un JWT de servicio firmado con JWT_SECRET",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ttl == 0 {
				ttl = time.Duration(a.cfg.JWT.Expiration) * time.Minute
			}
			token, err := jwt.Generate(a.cfg.JWT.Secret, subject, a.cfg.JWT.Issuer, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Cliente al que se emite el token")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Vigencia (por defecto JWT_EXPIRATION_MINUTES)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
