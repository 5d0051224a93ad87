/*
Copyright © 2025 The wireframe authors
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/config"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the wireframe HTTP API",
	Long: `Start the HTTP API:

  POST /api/wireframes            generate a wireframe
  POST /api/pages                 list workflow screens
  POST /api/wireframes/validate   validate a document, no model call
  GET  /healthz                   liveness
  GET  /metrics                   Prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srvCfg, err := config.LoadServerConfig()
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		ctx, stop := notifyContext(cmd)
		defer stop()

		p, err := newPipeline(ctx, pipelineOptions{backend: true, registerer: reg, command: "serve"})
		if err != nil {
			return err
		}
		defer p.Close()

		srv, err := server.New(server.Config{
			Addr:           srvCfg.Addr(),
			AllowedOrigins: srvCfg.AllowedOrigins,
			Pipeline:       p.gen,
			Gatherer:       reg,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Serving on http://%s (Ctrl+C to stop)\n", srvCfg.Addr())
		return serve(ctx, srv)
	},
}

// serve is replaced in tests.
var serve = func(ctx context.Context, srv *server.Server) error {
	return srv.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Int("port", config.DefaultServerPort, "port to listen on")
	serveCmd.Flags().String("host", config.DefaultServerHost, "host to bind")
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
}
