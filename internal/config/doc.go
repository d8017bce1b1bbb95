// Package config loads client configuration from the environment or a file.
//
// Environment variables use the PNETWORK_ prefix:
//
//	PNETWORK_BASE_URL         base URL every endpoint path is joined to
//	PNETWORK_DEFAULT_HEADERS  default headers, "Accept:application/json,X-App:demo"
//	PNETWORK_DEBUG            emit request traces on stderr
//	PNETWORK_TIMEOUT          transport timeout (0 disables it)
//	PNETWORK_USER_AGENT       User-Agent sent by the default transport
//	PNETWORK_RATE_LIMIT_RPS   requests per second, 0 for unlimited
//	PNETWORK_LOG_LEVEL        debug, info, warn or error
//	PNETWORK_LOG_DEV          console encoding instead of JSON
//
// LoadFile reads the same structure from .yaml, .yml or .toml files.
package config
