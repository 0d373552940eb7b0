// Package cmd implements the gep commands, to collect and explore Grand Exchange prices.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/geprice"
	"github.com/etnz/geprice/config"
	"github.com/etnz/geprice/grandexchange"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&fetchCmd{}, "collect")
	c.Register(&crawlCmd{}, "collect")

	c.Register(&historyCmd{}, "explore")
	c.Register(&queryCmd{}, "explore")
	c.Register(&namesCmd{}, "explore")
	c.Register(&exportCmd{}, "explore")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", os.Getenv("GEPRICE_CONFIG"), "Path to the YAML configuration file")
var dataDir = flag.String("data-dir", "", "Folder of the price data, overrides the configuration")
var raw = flag.Bool("raw", false, "Print raw markdown instead of styled text")

// stdout receives the commands output.
var stdout io.Writer = os.Stdout

// app holds what commands need, built from the configuration and global flags.
type app struct {
	cfg      *config.Config
	store    *geprice.Store
	registry *geprice.Registry
}

// openApp loads the configuration and opens the store and the registry.
// The registry is loaded lazily, on first use.
func openApp() (*app, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &app{
		cfg:      cfg,
		store:    geprice.NewStore(cfg.DataDir),
		registry: geprice.NewRegistry(cfg.RegistryPath(), cfg.Delimiter()),
	}, nil
}

// client returns a Grand Exchange client configured for this app.
func (a *app) client() *grandexchange.Client {
	return grandexchange.NewClient(a.cfg.ClientOptions()...)
}

// checkpointPath returns the file where crawls record their progress.
func (a *app) checkpointPath() string { return filepath.Join(a.cfg.DataDir, "crawl.checkpoint") }

// resolve returns the id and the canonical name of a commodity given by name or id.
// The name is empty when the registry does not know the id.
func (a *app) resolve(nameOrID string) (geprice.ID, string, error) {
	id, err := a.registry.Resolve(nameOrID)
	if err != nil {
		return 0, "", err
	}
	name, err := a.registry.CanonicalName(id)
	if err != nil {
		return id, "", nil
	}
	return id, name, nil
}

// printMarkdown prints md to stdout, styled for the terminal unless -raw is set.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}
