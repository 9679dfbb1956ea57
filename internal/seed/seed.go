// Package seed loads the supplier directory fixture into the store.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/cotador/internal/db"
	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/repository"
)

//go:embed suppliers_seed.json
var defaultFixture []byte

// Fixture is the seed file: one supplier array per directory collection.
type Fixture map[domain.Collection][]domain.Supplier

// Default returns the fixture embedded in the binary.
func Default() (Fixture, error) {
	return Parse(defaultFixture)
}

// Load reads a fixture from path, or the embedded default when path is "".
func Load(path string) (Fixture, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and checks a fixture document. Unknown collections and
// suppliers whose service type does not belong to their collection are
// rejected.
func Parse(data []byte) (Fixture, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var raw map[domain.Collection][]domain.Supplier
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding seed file: %w", err)
	}

	known := map[domain.Collection]bool{}
	for _, c := range domain.SupplierCollections {
		known[c] = true
	}
	for coll, suppliers := range raw {
		if !known[coll] {
			return nil, fmt.Errorf("unknown collection %q", coll)
		}
		seen := map[string]bool{}
		for i, s := range suppliers {
			if s.ID == "" {
				return nil, fmt.Errorf("%s[%d]: missing id", coll, i)
			}
			if seen[s.ID] {
				return nil, fmt.Errorf("%s[%d]: duplicate id %q", coll, i, s.ID)
			}
			seen[s.ID] = true
			want, ok := s.ServiceType.Collection()
			if !ok || want != coll {
				return nil, fmt.Errorf("%s[%d]: service_type %q does not belong here", coll, i, s.ServiceType)
			}
		}
	}
	return Fixture(raw), nil
}

// Result counts the suppliers written per collection.
type Result map[domain.Collection]int

// Apply replaces every collection present in f inside one transaction.
// Collections absent from f are left untouched.
func Apply(ctx context.Context, uow db.UnitOfWork, f Fixture) (Result, error) {
	res := Result{}
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLSupplierRepo(tx)
		for _, coll := range domain.SupplierCollections {
			suppliers, ok := f[coll]
			if !ok {
				continue
			}
			if err := repo.ReplaceCollection(ctx, coll, suppliers); err != nil {
				return err
			}
			res[coll] = len(suppliers)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("applying seed: %w", err)
	}
	return res, nil
}
