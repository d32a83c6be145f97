package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nigeltao/taokeys/internal/config"
	"github.com/nigeltao/taokeys/internal/logging"
	"github.com/nigeltao/taokeys/keys"
	"github.com/nigeltao/taokeys/xconn"
)

var version = "dev" // set by the linker

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Cobra has already printed the error.
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "taokeys",
		Short: "taokeys runs commands on global X11 key chords.",
		Long: `taokeys grabs key chords such as Control+Alt+Return on the X11 root
window and runs a command whenever one is pressed or released, whichever
window has the keyboard focus. Chords still fire while Caps Lock, Num Lock or
Scroll Lock is on.`,
		Version:      version,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default taokeys.yaml in the user config dir, /etc/taokeys or .)")
	cmd.AddCommand(newRunCmd(&cfgFile), newCheckCmd(&cfgFile), newInitCmd(&cfgFile))
	return cmd
}

func newRunCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Grab the configured chords and run their commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(cmd, *cfgFile)
			if err != nil {
				return err
			}
			logger, err := logging.New(cmd.ErrOrStderr(), c.LogLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cmd, c, logger)
		},
	}
	f := cmd.Flags()
	f.String("display", "", "X display to connect to (default $DISPLAY)")
	f.String("log-level", "info", "log level: debug, info, warn or error")
	f.Int("workers", 8, "maximum number of commands starting at once, 0 for no limit")
	f.Bool("single-flight", true, "drop a chord while its previous command is still starting")
	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, c config.Config, logger *slog.Logger) error {
	conn, err := xconn.Open(c.Display, logger)
	if err != nil {
		return err
	}
	reg := keys.NewRegistry(conn, keys.WithLogger(logger))
	d := keys.NewDispatcher(conn, reg,
		keys.WithLogger(logger),
		keys.WithMaxConcurrent(c.Workers),
		keys.WithSingleFlight(c.SingleFlight),
	)

	bs := newBindingSet(reg, logger)
	bs.apply(c.Bindings)
	if bs.count() == 0 {
		logger.Warn("no bindings registered")
	}

	if c.File != "" {
		w, err := watchConfig(ctx, c.File, logger, func() {
			nc, err := loadConfig(cmd, c.File)
			if err != nil {
				logger.Warn("config not reloaded", "err", err)
				return
			}
			bs.apply(nc.Bindings)
		})
		if err != nil {
			logger.Warn("not watching config file", "file", c.File, "err", err)
		} else {
			defer w.Close()
		}
	}

	err = d.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("shutting down")
		return nil
	}
	return err
}

func loadConfig(cmd *cobra.Command, path string) (config.Config, error) {
	c, err := config.Load(cmd.Flags(), path)
	if err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid config %s: %w", c.File, err)
	}
	return c, nil
}

func newCheckCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the config and show the masks each chord grabs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(cmd, *cfgFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if c.File != "" {
				fmt.Fprintf(out, "config: %s\n", c.File)
			} else {
				fmt.Fprintln(out, "config: none found")
			}
			for _, cb := range c.Bindings {
				b, err := cb.Build(keys.Func(func() {}))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-32s %#02x  %q\n", b.String(), keys.Expand(b.Modifiers()), cb.Exec)
			}
			return nil
		},
	}
}

func newInitCmd(cfgFile *string) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := *cfgFile
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing file")
	return cmd
}
