// Package config handles configuration loading for taskd.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable
// expansion. The package provides validation and sensible defaults.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from TASKD_CONFIG environment variable
//  2. ~/.config/taskd/taskd.yaml (respecting XDG_CONFIG_HOME)
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  jwt_secret: "${TASKD_JWT_SECRET}"
//
// # Configuration Sections
//
//	server:
//	  http_addr: "127.0.0.1:4000"
//
//	database:
//	  path: "~/.local/share/taskd/taskd.db"
//
//	auth:
//	  jwt_secret: "${TASKD_JWT_SECRET}"  # required, min 32 bytes
//	  token_ttl: "24h"
//
//	cors:
//	  allowed_origins: ["http://localhost:5173"]
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Validation
//
// Load() rejects a missing or short jwt_secret: taskd refuses to start
// without a usable signing key.
package config
