// Package config loads runtime configuration for the posadmin client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c/-config, or POSADMIN_CONFIG.
//  3. POSADMIN_API_URL overrides the API base URL.
//  4. Command-line flags, which override everything before them.
//
// The result is validated before it is returned.
//
// Supported flags
//
//	-a string   API base URL
//	-t int      request timeout (seconds)
//	-s string   credential store mode (durable|session)
//
// # JSON schema
//
// Durations use timex.Duration, so values are strings like "15s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:4000/api",
//	  "request_timeout": "15s",
//	  "store_mode": "durable",
//	  "store_path": "/home/me/.posadmin/credentials.db",
//	  "require_admin_role": true,
//	  "auto_login_after_register": true,
//	  "log_backend": "zap",
//	  "log_level": "debug",
//	  "log_format": "json"
//	}
package config
