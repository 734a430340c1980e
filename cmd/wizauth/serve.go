package main

import (
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/wizauth/internal/config"
	"github.com/dropDatabas3/wizauth/internal/http/server"
	"github.com/dropDatabas3/wizauth/internal/observability/logger"
)

type loader func() (*config.Config, error)

func newServeCmd(load loader) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return server.Run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "dirección de escucha (pisa server.addr)")
	return cmd
}
