package wechatlogin

import "embed"

// Migrations holds the plugin's schema migrations for pkg/db.Migrate.
//
//go:embed migrations/*.sql
var Migrations embed.FS
