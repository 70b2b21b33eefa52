// Package db bootstraps the PostgreSQL pool backing the openid mapping
// store.
//
// It wraps [github.com/jackc/pgx/v5/pgxpool] with startup retry logic and
// applies the embedded schema migrations with [github.com/pressly/goose/v3].
// The plugin owns a single table (wechat_openids); the host platform's own
// schema is never touched.
//
// # Configuration
//
// Settings load from environment variables via the Config struct:
//
//	WECHAT_DATABASE_URL              - PostgreSQL connection URL (required)
//	WECHAT_DATABASE_MAX_OPEN_CONNS   - Maximum open connections (default: 5)
//	WECHAT_DATABASE_MIN_CONNS        - Minimum idle connections (default: 1)
//	WECHAT_DATABASE_RETRY_ATTEMPTS   - Connection retry attempts (default: 3)
//	WECHAT_DATABASE_RETRY_INTERVAL   - Base retry interval (default: 5s)
//	WECHAT_DATABASE_MIGRATIONS_TABLE - Migrations table (default: wechat_login_migrations)
//
// # Usage
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	if err := db.Migrate(ctx, pool, wechatlogin.Migrations, cfg.MigrationsTable, logger); err != nil {
//		log.Fatal(err)
//	}
package db
