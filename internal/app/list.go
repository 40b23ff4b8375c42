package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/five82/pwarps/internal/catalog"
	"github.com/five82/pwarps/internal/config"
	"github.com/five82/pwarps/internal/state"
	"github.com/five82/pwarps/internal/warps"
)

// Output formats for List.
const (
	FormatTable = "table"
	FormatPlain = "plain"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ListOptions configure a one-shot catalog listing.
type ListOptions struct {
	ConfigPath string
	Search     string
	SortBy     string
	Order      string
	// Format is table, plain, json or yaml. Empty picks table on a terminal
	// and plain otherwise.
	Format string
	// Seed makes shuffle reproducible when HasSeed is set.
	Seed    uint64
	HasSeed bool
}

// List loads the catalog once, derives the view and writes it to out.
func List(ctx context.Context, opts ListOptions, out io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	client, err := warps.NewClient(cfg.SiteURL, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}
	return listFrom(ctx, client, opts, out)
}

func listFrom(ctx context.Context, source warps.Source, opts ListOptions, out io.Writer) error {
	initial := state.DefaultViewState()
	initial.SearchTerm = opts.Search
	if opts.SortBy != "" {
		key, err := catalog.ParseSortKey(opts.SortBy)
		if err != nil {
			return err
		}
		initial.SortBy = key
	}
	if opts.Order != "" {
		order, err := catalog.ParseSortOrder(opts.Order)
		if err != nil {
			return err
		}
		initial.SortOrder = order
	}
	format, err := resolveFormat(opts.Format, out)
	if err != nil {
		return err
	}

	var rng catalog.Rand = catalog.DefaultRand
	if opts.HasSeed {
		rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	}

	records, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	store := state.NewStore(initial, nil, rng)
	store.SetRecords(records)
	return writeView(out, format, store.Snapshot())
}

func resolveFormat(format string, out io.Writer) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "":
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return FormatTable, nil
		}
		return FormatPlain, nil
	case FormatTable:
		return FormatTable, nil
	case FormatPlain:
		return FormatPlain, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want table, plain, json or yaml)", format)
	}
}

func writeView(out io.Writer, format string, snap state.Snapshot) error {
	view := snap.View
	if view == nil {
		view = []warps.Record{}
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err

	case FormatYAML:
		data, err := yaml.Marshal(view)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = out.Write(data)
		return err

	case FormatPlain:
		for _, r := range view {
			if _, err := fmt.Fprintln(out, r.Name); err != nil {
				return err
			}
		}
		return nil
	}

	if len(view) == 0 {
		_, err := fmt.Fprintln(out, "No warps found")
		return err
	}

	rows := make([][]string, 0, len(view))
	for _, r := range view {
		created := r.Created
		if t, ok := r.CreatedAt(); ok {
			created = t.UTC().Format("2006-01-02")
		}
		rows = append(rows, []string{r.Name, r.Owner, fmt.Sprintf("%d", r.VisitCount()), created, r.Command()})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "OWNER", "VISITS", "CREATED", "COMMAND").
		Rows(rows...)

	_, err := fmt.Fprintf(out, "%s\nShowing %d of %d warps, %d total visits, %d owners\n",
		t.String(), len(view), snap.Stats.Warps, snap.Stats.TotalVisits, snap.Stats.UniqueOwners)
	return err
}
