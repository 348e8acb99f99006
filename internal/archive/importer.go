package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/clinsearch/clinsearch/internal/bundle"
)

// Importer loads bundle files from a folder into the store. Files are
// independent, so imports run in parallel up to the worker limit; each Put is
// a single atomic row.
type Importer struct {
	store   Store
	log     zerolog.Logger
	workers int
}

// ImportResult summarizes one folder import.
type ImportResult struct {
	Files    int
	Imported int
	Failed   int
	Errors   []error
}

func NewImporter(store Store, log zerolog.Logger, workers int) *Importer {
	if workers < 1 {
		workers = 1
	}
	return &Importer{store: store, log: log, workers: workers}
}

// ImportDir archives every .json file under dir. A file that cannot be read,
// decoded, or keyed fails on its own; the rest of the folder still imports.
func (i *Importer) ImportDir(ctx context.Context, dir string) (*ImportResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read bundle folder %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, e.Name())
	}

	result := &ImportResult{Files: len(files)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)

	for _, name := range files {
		name := name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			err := i.importFile(gctx, dir, name)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Errorf("%s: %w", name, err))
				i.log.Warn().Err(err).Str("file", name).Msg("bundle import failed")
				return nil
			}
			result.Imported++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	i.log.Info().
		Int("files", result.Files).
		Int("imported", result.Imported).
		Int("failed", result.Failed).
		Str("dir", dir).
		Msg("bundle folder imported")
	return result, nil
}

func (i *Importer) importFile(ctx context.Context, dir, name string) error {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return err
	}

	id, err := businessID(raw, name)
	if err != nil {
		return err
	}
	return i.store.Put(ctx, id, raw)
}

// businessID pulls the archive key out of a bundle: the Patient resource's
// source-system UUID identifier, falling back to its resource id.
func businessID(raw []byte, sourceFile string) (string, error) {
	cat, _, err := bundle.Process(raw, sourceFile)
	if err != nil {
		return "", err
	}
	if len(cat.Patients) == 0 {
		return "", fmt.Errorf("no Patient resource in bundle")
	}
	p := cat.Patients[0]
	if p.UUID != "" {
		return p.UUID, nil
	}
	if p.ID != "" {
		return p.ID, nil
	}
	return "", fmt.Errorf("patient carries no usable identifier")
}
