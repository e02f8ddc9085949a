package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/netip"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/screensplit/internal/model"
)

// EnvPrefix namespaces the environment variables read by the loader,
// e.g. SCREENSPLIT_SERVERS=32.
const EnvPrefix = "SCREENSPLIT"

// Configuration keys. They double as flag names in the cli package.
const (
	KeyWidth   = "width"
	KeyHeight  = "height"
	KeyServers = "servers"
	KeyNetwork = "network"
)

// ErrConfigNotFound is returned by FindConfigFile when no candidate exists.
var ErrConfigNotFound = errors.New("no screensplit config file found")

// candidateNames are searched in order by FindConfigFile.
var candidateNames = []string{
	"screensplit.yaml",
	"screensplit.yml",
	"screensplit.json",
	"screensplit.jsonc",
}

// New creates a viper instance carrying the defaults and the environment
// binding. Flags are bound on top of it by the caller before Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	// Map SCREENSPLIT_WIDTH -> width etc. AutomaticEnv only resolves keys
	// viper already knows, which is why every key has a default.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyWidth, model.DefaultWidth)
	v.SetDefault(KeyHeight, model.DefaultHeight)
	v.SetDefault(KeyServers, model.DefaultServers)
	v.SetDefault(KeyNetwork, model.DefaultNetwork)
}

// LoadDotEnv loads KEY=VALUE pairs from a .env file in dir into the process
// environment. Variables already set win over the file. A missing file is
// not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ReadFile merges a config file into v. The format is chosen from the file
// extension: .yaml/.yml, .json, or .jsonc. JSON files may carry comments
// and trailing commas either way.
//
// Returns a CLIError with ExitConfigError if the file cannot be read or parsed.
func ReadFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		v.SetConfigType("yaml")
	case ".json", ".jsonc":
		// Strip // and /* */ comments and trailing commas before viper's
		// strict JSON parser sees the data.
		data = jsonc.ToJSON(data)
		v.SetConfigType("json")
	default:
		return model.NewCLIError(model.ExitConfigError,
			fmt.Sprintf("unsupported config file type %q (valid: .yaml, .yml, .json, .jsonc)", filepath.Ext(path)))
	}

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to parse config file %s", path), err)
	}
	return nil
}

// FindConfigFile searches dir for a config file in the standard locations.
//
// The search order is screensplit.yaml, screensplit.yml, screensplit.json,
// screensplit.jsonc. Returns ErrConfigNotFound if none exists.
func FindConfigFile(dir string) (string, error) {
	for _, name := range candidateNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrConfigNotFound, dir)
}

// Decode converts the merged settings in v into a Layout. It performs type
// conversion only; invariants are checked by the layout package.
func Decode(v *viper.Viper) (model.Layout, error) {
	var l model.Layout
	if err := v.Unmarshal(&l, viper.DecodeHook(prefixDecodeHook())); err != nil {
		return model.Layout{}, model.WrapCLIError(model.ExitConfigError, "failed to decode configuration", err)
	}
	return l, nil
}

// Load resolves the layout from every source. When path is empty, dir is
// searched with FindConfigFile and running without a file is allowed.
func Load(v *viper.Viper, path, dir string) (model.Layout, string, error) {
	if err := LoadDotEnv(dir); err != nil {
		return model.Layout{}, "", model.WrapCLIError(model.ExitConfigError, "failed to load environment", err)
	}

	if path == "" {
		found, err := FindConfigFile(dir)
		if err != nil && !errors.Is(err, ErrConfigNotFound) {
			return model.Layout{}, "", err
		}
		path = found
	}

	if path != "" {
		if err := ReadFile(v, path); err != nil {
			return model.Layout{}, "", err
		}
	}

	l, err := Decode(v)
	if err != nil {
		return model.Layout{}, "", err
	}
	return l, path, nil
}

// prefixDecodeHook converts strings such as "2000:42::/64" into netip.Prefix.
func prefixDecodeHook() mapstructure.DecodeHookFunc {
	targetType := reflect.TypeOf(netip.Prefix{})

	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != targetType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			p, err := netip.ParsePrefix(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("invalid network %q: %w", v, err)
			}
			return p, nil
		case netip.Prefix:
			return v, nil
		default:
			return nil, fmt.Errorf("invalid network value of type %T", data)
		}
	}
}
