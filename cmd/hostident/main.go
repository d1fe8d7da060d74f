package main

import (
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hostident/internal/config"
	"hostident/internal/logging"
)

// globalOptions are the persistent flags shared by every subcommand
type globalOptions struct {
	configPath string
	debug      bool
	hostname   string
	address    string

	cfg *config.Config
	// path of the loaded config file, empty when running on defaults
	path string
}

func main() {
	if err := logging.Configure(logging.LevelWarn); err != nil {
		_, _ = os.Stderr.WriteString("configure logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := rootCmd().Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "hostident",
		Short:         "Resolve the local host's name and best addresses",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: first of "+strings.Join(config.SearchPaths(), ", ")+")")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&opts.hostname, "hostname", "", "Override the OS hostname")
	root.PersistentFlags().StringVar(&opts.address, "address", "", "Use this address instead of enumerating interfaces")

	root.AddCommand(showCmd(opts))
	root.AddCommand(serveCmd(opts))
	root.AddCommand(historyCmd(opts))
	return root
}

// load reads the config file, applies flag overrides and configures logging
func (o *globalOptions) load() error {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if o.configPath != "" {
		cfg, path, err = config.LoadFromPath(o.configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return err
	}

	if o.hostname != "" {
		cfg.Identity.Hostname = o.hostname
	}
	if o.address != "" {
		if _, err := netip.ParseAddr(o.address); err != nil {
			return fmt.Errorf("--address: %w", err)
		}
		cfg.Identity.Address = o.address
	}
	if o.debug {
		cfg.Log.Level = logging.LevelDebug
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logging.Configure(cfg.Log.Level); err != nil {
		return err
	}
	if path != "" {
		slog.Debug("loaded config", "path", path, "summary", cfg.Summary())
	}

	o.cfg = cfg
	o.path = path
	return nil
}
