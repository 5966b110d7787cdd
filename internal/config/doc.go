// Package config provides the configuration of multipick.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (applied by cmd)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← MULTIPICK_SECTION_KEY
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML or YAML
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Configuration Files
//
//	# multipick.toml
//	[source]
//	endpoint = "https://api.coingecko.com/api/v3/coins/list"
//	timeout = "15s"
//	cache_ttl = "5m"
//	max_sample = 3000
//
//	[select]
//	limit = 3
//	picked = ["bitcoin"]
//	placeholder = "Enter Coin"
//
//	[logging]
//	level = "info"
//	file = "/tmp/multipick.log"
//
// The same keys are accepted in YAML.
package config
