// foodsearch runs one food search through the same engine the HTTP server
// uses and prints the JSON response.
//
// Usage:
//
//	foodsearch search --mode branded --limit 5 "peanut butter"
//	foodsearch version
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cmsteiner495/elevatedhealth-sub000/config"
	"github.com/cmsteiner495/elevatedhealth-sub000/internal/app"
	httpDelivery "github.com/cmsteiner495/elevatedhealth-sub000/internal/delivery/http"
	"github.com/cmsteiner495/elevatedhealth-sub000/internal/domain"
	"github.com/cmsteiner495/elevatedhealth-sub000/internal/usecase"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:    "foodsearch",
		Usage:   "Search, normalize and rank foods from USDA FoodData Central and Open Food Facts",
		Version: httpDelivery.Version,
		Writer:  out,
		Commands: []*cli.Command{
			searchCommand(),
			versionCommand(),
		},
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Run one search and print the JSON response",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Value:   string(domain.ModeCommon),
				Usage:   "Search mode (common, branded)",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Value:   usecase.DefaultLimit,
				Usage:   "Maximum number of results (1-25)",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "Print JSON on a single line",
			},
		},
		Action: runSearch,
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(c *cli.Context) error {
			fmt.Fprintf(c.App.Writer, "foodsearch %s\n", httpDelivery.Version)
			return nil
		},
	}
}

func runSearch(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return cli.Exit("a search query is required", 2)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// Keep stdout clean for the JSON document
	app.SetupLogger(cfg, os.Stderr)

	engine, err := app.NewEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	return search(c.Context, engine.Service, c.App.Writer, domain.SearchRequest{
		Query: query,
		Mode:  domain.ParseMode(c.String("mode")),
		Limit: c.Int("limit"),
	}, c.Bool("compact"))
}

// searcher is the part of the search service the CLI needs
type searcher interface {
	Search(ctx context.Context, request domain.SearchRequest) (*domain.SearchResponse, error)
}

func search(ctx context.Context, svc searcher, out io.Writer, request domain.SearchRequest, compact bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	response, err := svc.Search(ctx, request)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			return cli.Exit(err.Error(), 2)
		}
		return err
	}

	enc := json.NewEncoder(out)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(response)
}
