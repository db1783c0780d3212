package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
// SaveSnapshot replaces the persisted state inside one transaction, so a
// failed save leaves the previous snapshot intact.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// LoadSnapshot materializes the whole store: all products, their points in
// insertion order, and the settings row (defaults when absent).
func (s *PostgresStore) LoadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	history := domain.History{}

	rows, err := s.pool.Query(ctx, queryListProducts)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec := &domain.ProductRecord{}
		if err := rows.Scan(&rec.ProductID, &rec.Title); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		history[rec.ProductID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}
	rows.Close()

	pointRows, err := s.pool.Query(ctx, queryListPoints)
	if err != nil {
		return nil, fmt.Errorf("querying price points: %w", err)
	}
	defer pointRows.Close()

	for pointRows.Next() {
		var productID string
		var point domain.PricePoint
		if err := pointRows.Scan(&productID, &point.Price, &point.Currency, &point.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning price point: %w", err)
		}
		if rec, ok := history[productID]; ok {
			rec.PriceHistory = append(rec.PriceHistory, point)
		}
	}
	if err := pointRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating price points: %w", err)
	}

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Snapshot{History: history, Settings: settings}, nil
}

func (s *PostgresStore) loadSettings(ctx context.Context) (domain.Settings, error) {
	var settings domain.Settings
	err := s.pool.QueryRow(ctx, queryGetSettings).Scan(
		&settings.NotificationsEnabled,
		&settings.CheckIntervalMinutes,
		&settings.PriceDropThreshold,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("querying settings: %w", err)
	}
	return settings, nil
}

// SaveSnapshot replaces the persisted snapshot wholesale in one transaction.
func (s *PostgresStore) SaveSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, queryDeleteAllProducts); err != nil {
		return fmt.Errorf("clearing products: %w", err)
	}

	batch := &pgx.Batch{}
	for productID, rec := range snap.History {
		batch.Queue(queryInsertProduct, pgx.NamedArgs{
			"product_id": productID,
			"title":      rec.Title,
		})
		for i, point := range rec.PriceHistory {
			batch.Queue(queryInsertPoint, pgx.NamedArgs{
				"product_id":  productID,
				"position":    i,
				"price":       point.Price,
				"currency":    point.Currency,
				"observed_at": point.Timestamp,
			})
		}
	}
	batch.Queue(queryUpsertSettings, settingsArgs(snap.Settings))

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("writing snapshot batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// SaveSettings upserts the settings row without touching the history.
func (s *PostgresStore) SaveSettings(ctx context.Context, settings domain.Settings) error {
	if _, err := s.pool.Exec(ctx, queryUpsertSettings, settingsArgs(settings)); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

func settingsArgs(settings domain.Settings) pgx.NamedArgs {
	return pgx.NamedArgs{
		"notifications_enabled":  settings.NotificationsEnabled,
		"check_interval_minutes": settings.CheckIntervalMinutes,
		"price_drop_threshold":   settings.PriceDropThreshold,
	}
}

// DeleteProduct removes one record; its points cascade.
func (s *PostgresStore) DeleteProduct(ctx context.Context, productID string) error {
	tag, err := s.pool.Exec(ctx, queryDeleteProduct, productID)
	if err != nil {
		return fmt.Errorf("deleting product %s: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes all tracked records. Settings survive.
func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, queryDeleteAllProducts); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}
