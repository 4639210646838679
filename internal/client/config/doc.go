// Package config loads runtime configuration for the userkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c/-config or USERKEEPER_CONFIG.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the userkeeper HTTP API
//	-i int      online status check interval (seconds)
//	-r int      request timeout (seconds)
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s"
//	}
package config
