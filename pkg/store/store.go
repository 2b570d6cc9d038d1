// Package store reads the restaurant's product catalog and customer
// directory from the Supabase Postgres database the POS sync writes to.
// It is read-only and safe to share across concurrent sessions.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/oryxlabs/voiceorder/agent/contract"
)

type Config struct {
	DSN     string        `envconfig:"DSN" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

type Store struct {
	db *bun.DB
}

func New(cfg Config) (*Store, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("store dsn is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithTimeout(timeout),
	))
	return &Store{db: bun.NewDB(sqldb, pgdialect.New())}, nil
}

func MustNew(cfg Config) *Store {
	s, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ProductsForBusiness returns every product synced for the business, in
// stable insert order. No rows is a valid empty menu, not a fault.
func (s *Store) ProductsForBusiness(ctx context.Context, businessKey string) ([]contractx.Product, error) {
	key := strings.TrimSpace(businessKey)
	if key == "" {
		return []contractx.Product{}, nil
	}

	var rows []productRow
	err := s.db.NewSelect().
		Model(&rows).
		Where("business_id = ?", key).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select products for business %s: %w", key, err)
	}

	products := make([]contractx.Product, 0, len(rows))
	for i := range rows {
		products = append(products, rows[i].toProduct())
	}
	return products, nil
}

// ProductByID returns nil for a missing or disabled product so callers can
// tell "not orderable" apart from a store fault.
func (s *Store) ProductByID(ctx context.Context, id string) (*contractx.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}

	row := new(productRow)
	err := s.db.NewSelect().
		Model(row).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select product %s: %w", id, err)
	}

	product := row.toProduct()
	if !product.Available() {
		return nil, nil
	}
	return &product, nil
}

// CustomerByPhone looks up a known caller. The record is used for greeting
// personalization and cart tagging only.
func (s *Store) CustomerByPhone(ctx context.Context, phone string) (*contractx.Customer, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, nil
	}

	row := new(customerRow)
	err := s.db.NewSelect().
		Model(row).
		Where("phone = ?", phone).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select customer by phone: %w", err)
	}
	return row.toCustomer(), nil
}
