package store

// SQL query constants organized by entity.
// All SQL lives here; PostgresStore methods reference these constants.

// Product queries.
const (
	queryListProducts = `
		SELECT product_id, title
		FROM products
		ORDER BY product_id`

	queryInsertProduct = `
		INSERT INTO products (product_id, title, updated_at)
		VALUES (@product_id, @title, now())`

	queryDeleteProduct = `
		DELETE FROM products
		WHERE product_id = $1`

	queryDeleteAllProducts = `DELETE FROM products`
)

// Price point queries. Points cascade-delete with their product; the
// position column preserves insertion order independent of timestamps.
const (
	queryListPoints = `
		SELECT product_id, price, currency, observed_at
		FROM price_points
		ORDER BY product_id, position`

	queryInsertPoint = `
		INSERT INTO price_points (product_id, position, price, currency, observed_at)
		VALUES (@product_id, @position, @price, @currency, @observed_at)`
)

// Settings queries. A single row holds the one logical settings record.
const (
	queryGetSettings = `
		SELECT notifications_enabled, check_interval_minutes, price_drop_threshold
		FROM settings
		WHERE id = 1`

	queryUpsertSettings = `
		INSERT INTO settings (id, notifications_enabled, check_interval_minutes, price_drop_threshold)
		VALUES (1, @notifications_enabled, @check_interval_minutes, @price_drop_threshold)
		ON CONFLICT (id) DO UPDATE SET
			notifications_enabled = EXCLUDED.notifications_enabled,
			check_interval_minutes = EXCLUDED.check_interval_minutes,
			price_drop_threshold = EXCLUDED.price_drop_threshold`
)
