package store

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"

	"github.com/go-faster/errors"
	"github.com/lfcamargo/beautystock/internal/domain"
	"github.com/lfcamargo/beautystock/internal/port"
)

type jsonStore struct {
	path string
}

// New returns a CatalogStore persisting the catalog as one JSON file.
func New(path string) (port.CatalogStore, error) {
	if path == "" {
		return nil, errors.New("path is empty")
	}

	return &jsonStore{path: path}, nil
}

func (s *jsonStore) Load(ctx context.Context) (domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		// First run: bootstrap an empty document so every later
		// operation sees a file. Never a missing-file error upstream.
		catalog := domain.Catalog{}
		if err := s.Save(ctx, catalog); err != nil {
			return nil, errors.Wrap(err, "bootstrap empty catalog")
		}
		return catalog, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "os.ReadFile")
	}

	var catalog domain.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Wrapf(err, "unmarshal catalog[%s]", s.path)
	}
	if catalog == nil {
		catalog = domain.Catalog{}
	}

	return catalog, nil
}

func (s *jsonStore) Save(ctx context.Context, catalog domain.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if catalog == nil {
		catalog = domain.Catalog{}
	}

	data, err := json.MarshalIndent(catalog, "", "    ")
	if err != nil {
		return errors.Wrap(err, "marshal catalog")
	}

	// Write-then-rename so the document on disk is never half a save.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "os.WriteFile")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "os.Rename")
	}

	return nil
}
