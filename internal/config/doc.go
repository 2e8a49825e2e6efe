// Package config loads configuration for both tango binaries.
//
// # Client
//
// Load reads the tango client's TOML file:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tango/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. TANGO_API_URL and TANGO_TOKEN override file values; a .env file in the
//     working directory is loaded into the environment first
//
// Defaults: api_url http://127.0.0.1:8787, log_file
// ~/.local/state/tango/tango.log, no token.
//
// # Server
//
// LoadServer reads tangod.toml through viper, searching ., ./config and
// /etc/tangod. Every key can be overridden with a TANGOD_ environment
// variable where dots become underscores, so database.password is
// TANGOD_DATABASE_PASSWORD. Example:
//
//	[server]
//	port = 8787
//
//	[database]
//	driver = "postgres"
//	host = "db"
//
//	[[auth.users]]
//	id = "mina"
//	token = "change-me"
//
//	[translator]
//	key = "..."
//	region = "japaneast"
package config
