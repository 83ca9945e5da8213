// Command registry-check parses an ensemble configuration file, builds the
// configuration registry from it and reports the registered variables. It
// can optionally re-emit the normalized configuration text, persist a
// registry snapshot to the configured store, or archive the text in the
// configured blob store.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ensemblecore/internal/blob"
	"ensemblecore/internal/configtext"
	"ensemblecore/internal/core"
)

var exitFunc = os.Exit

// reportKinds fixes the order of the per-kind counts in the report.
var reportKinds = []core.ImplementationKind{
	core.KindGenKW,
	core.KindField,
	core.KindGenData,
	core.KindSurface,
	core.KindSummary,
	core.KindContainer,
	core.KindStatic,
}

// staticGrid is a minimal grid handle for validation runs: the command has
// no access to the real simulation grid, only its declared dimensions.
type staticGrid struct {
	name  string
	cells int
}

func (g staticGrid) Name() string     { return g.name }
func (g staticGrid) ActiveCells() int { return g.cells }

func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("registry-check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "ensemble.conf", "path to the ensemble configuration file")
		emit       = fs.Bool("emit", false, "re-emit the normalized configuration text on stdout")
		snapshot   = fs.Bool("snapshot", false, "persist a registry snapshot to the configured store")
		archiveKey = fs.String("archive", "", "blob key to archive the normalized configuration under")
		gridName   = fs.String("grid-name", "GRID", "name of the grid assumed for FIELD variables")
		gridCells  = fs.Int("grid-cells", 0, "active cell count of the assumed grid")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	registry, err := run(*configPath, staticGrid{name: *gridName, cells: *gridCells}, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration check failed: %v\n", err)
		return 1
	}

	report(stdout, registry)

	if *emit {
		if err := registry.EncodeConfig(stdout); err != nil {
			fmt.Fprintf(stderr, "Emit failed: %v\n", err)
			return 1
		}
	}
	ctx := context.Background()
	if *snapshot {
		if err := saveSnapshot(ctx, registry); err != nil {
			fmt.Fprintf(stderr, "Snapshot failed: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, "Snapshot saved.")
	}
	if *archiveKey != "" {
		info, err := archive(ctx, registry, *archiveKey)
		if err != nil {
			fmt.Fprintf(stderr, "Archive failed: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Archived %s (%d bytes).\n", info.Key, info.Size)
	}
	return 0
}

// validatePath rejects absolute and path-traversing config references so the
// command only reads inside the working tree.
func validatePath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("empty path")
	}
	if filepath.IsAbs(p) {
		return "", fmt.Errorf("absolute paths not allowed: %s", p)
	}
	clean := filepath.Clean(p)
	if strings.Contains(clean, "..") {
		return "", fmt.Errorf("path traversal not allowed: %s", p)
	}
	return clean, nil
}

// run parses the configuration file and builds a registry from it.
func run(configPath string, grid core.Grid, logger core.Logger) (registry *core.Registry, err error) {
	safePath, err := validatePath(configPath)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(safePath) // #nosec G304: path validated by validatePath
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close config: %w", cerr)
		}
	}()

	cfg, err := configtext.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	registry = core.NewRegistry(core.WithLogger(logger))
	if err := registry.IngestConfig(cfg, grid); err != nil {
		return nil, err
	}
	registry.InitInternalization()
	return registry, nil
}

func report(w io.Writer, registry *core.Registry) {
	fmt.Fprintf(w, "Configuration valid: %d variables.\n", registry.Len())
	for _, kind := range reportKinds {
		keys := registry.KeysByKind(kind)
		if len(keys) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-10s %3d  %s\n", kind, len(keys), strings.Join(keys, " "))
	}
}

func saveSnapshot(ctx context.Context, registry *core.Registry) error {
	store, err := core.OpenSnapshotStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return registry.SaveSnapshot(ctx, store)
}

func archive(ctx context.Context, registry *core.Registry, key string) (blob.Info, error) {
	store, err := blob.Open(ctx)
	if err != nil {
		return blob.Info{}, err
	}
	return registry.ExportConfigText(ctx, store, key)
}
