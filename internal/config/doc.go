// Package config resolves the screen/network layout for a run.
//
// Sources are layered with github.com/spf13/viper, lowest precedence first:
//
//   - built-in defaults (1920x1080, 16 servers, 2000:42::/64)
//   - a config file (YAML, JSON, or JSON with comments)
//   - a .env file in the working directory, loaded via github.com/joho/godotenv
//   - SCREENSPLIT_* environment variables
//   - command-line flags bound by the cli package
//
// JSONC files are cleaned with github.com/tidwall/jsonc before parsing, so
// commented configuration files are accepted. The network prefix is decoded
// into a netip.Prefix through a mapstructure decode hook.
package config
