package main

import (
	"github.com/spf13/cobra"

	"github.com/domonda/go-regrid/internal/host"
	"github.com/domonda/go-regrid/tablevisual"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host table visuals over HTTP",
		Long: `Host table visuals over HTTP:

  POST   /visuals                      construct a visual, returns {"id": …}
  POST   /visuals/{id}/update          update with VisualUpdateOptions or a DataView
  GET    /visuals/{id}                 rendered HTML
  GET    /visuals/{id}/objects/{name}  property pane object instances
  DELETE /visuals/{id}                 drop the visual`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := host.NewServer(tablevisual.Constructor, a.cfg.Viewport(), &a.log)
			return server.Serve(cmd.Context(), a.cfg.Addr)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().Float64("width", 0, "viewport width for bare data views")
	cmd.Flags().Float64("height", 0, "viewport height for bare data views")
	return cmd
}
