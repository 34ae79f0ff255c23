// Package config loads runtime configuration for the todokeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file passed with --config.
//  3. TODOKEEPER_SERVER, TODOKEEPER_TOKEN_FILE and TODOKEEPER_TIMEOUT.
//  4. Command-line flags, applied by the cli package on top of Load.
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "5s"
// or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "token_file": "/home/alice/.config/todokeeper/token",
//	  "timeout": "5s"
//	}
package config
