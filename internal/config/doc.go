// Package config loads keyforge settings.
//
// Settings are layered, later sources overriding earlier ones:
//
//	defaults -> TOML file -> KEYFORGE_* environment -> command-line flags
//
// Load applies the first three; the CLI applies flags and calls Validate
// again. A missing settings file is not an error.
//
// Example file:
//
//	[keyboard]
//	tapping_term = 200
//	leader_timeout = 500
//	host_os = "mac"
//
//	[storage]
//	path = "keyforge.nv"
//
//	[log]
//	level = "debug"
//	file = "keyforge.log"
package config
