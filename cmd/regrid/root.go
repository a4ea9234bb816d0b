package main

import (
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/domonda/go-regrid/internal/config"
)

// version is set at build time with
// -ldflags "-X main.version=v1.2.3"
var version = ""

// app holds the state shared by all commands
// after the persistent pre-run loaded the configuration.
type app struct {
	configFile string
	cfg        *config.Config
	log        zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := new(app)
	rootCmd := &cobra.Command{
		Use:   "regrid",
		Short: "Reshape tabular data into sortable HTML grids",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(a.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
				Level(cfg.Level()).
				With().
				Timestamp().
				Logger()
			if cfg.File != "" {
				a.log.Debug().Str("file", cfg.File).Msg("using config file")
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: ./regrid.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace|debug|info|warn|error)")

	rootCmd.AddCommand(
		newRenderCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "regrid %s\n", buildVersion())
			return err
		},
	}
}

func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
