// Package config manages application configuration for the Agenda API.
//
// Values are resolved in three layers, later layers winning:
//
//  1. Default()
//  2. the YAML file named by CONFIG_FILE, when set
//  3. environment variables
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS, log level, rate limit)
//   - DatabaseConfig: store driver ("surrealdb" or "memory") and its settings
//   - JWTConfig: token keys, lifetime and issuer
//
// # Environment Variables
//
//	SERVER_PORT              - HTTP port (default: 8080)
//	SERVER_ENV               - development, production or test
//	LOG_LEVEL                - debug, info, warn or error
//	CORS_ALLOWED_ORIGINS     - comma separated origins
//	RATE_LIMIT_RATE          - requests per window per caller, 0 disables
//	RATE_LIMIT_WINDOW        - window duration (default: 1m)
//	RATE_LIMIT_BURST         - extra requests allowed in a burst
//	DB_DRIVER                - surrealdb or memory
//	DB_HOST, DB_PORT         - SurrealDB address
//	DB_NAMESPACE, DB_DATABASE
//	DB_USER, DB_PASSWORD
//	MEMORY_SNAPSHOT_PATH     - JSON snapshot file for the memory driver
//	MEMORY_SNAPSHOT_INTERVAL - how often the snapshot is written
//	JWT_PUBLIC_KEY_PATH      - RSA public key used to validate tokens
//	JWT_PRIVATE_KEY_PATH     - RSA private key used by admin-token
//	JWT_EXPIRATION_MINS, JWT_ISSUER
package config
