package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem abstracts the file operations the loader performs, so tests
// can resolve against an in-memory layout instead of the real disk.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem is the FileSystem used outside of tests.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	return true
}

func (RealFileSystem) LoadEnv(path string) error { return godotenv.Load(path) }

// searchDepths orders candidate directories nearest-first: the working
// directory, then one and two levels up, covering binaries started from
// cmd/<service> as well as from the repo root.
var searchDepths = []string{".", "..", "../.."}

// fallbackConfigPaths are tried after the per-service candidates.
var fallbackConfigPaths = []string{"./config/config.yml", "../config/config.yml", "./config.yml"}

// Resolver locates config and .env files for a service when no explicit
// paths are given.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles is the outcome of a resolution pass. An empty field means
// the file was not found and that source is skipped.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns the explicit paths from opts when set, otherwise
// searches the standard locations.
func (r *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{ConfigFile: opts.ConfigFile, EnvFile: opts.EnvFile}

	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.findConfigFile(serviceName)
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.findEnvFile(serviceName)
	}

	return resolved
}

// serviceNameForms returns the service name plus its short form, the part
// after the last dash, so "authflow-demo" also matches cmd/demo.
func serviceNameForms(serviceName string) []string {
	if idx := strings.LastIndex(serviceName, "-"); idx != -1 && idx+1 < len(serviceName) {
		return []string{serviceName, serviceName[idx+1:]}
	}
	return []string{serviceName}
}

func (r *Resolver) findConfigFile(serviceName string) string {
	var candidates []string
	for _, depth := range searchDepths {
		for _, name := range serviceNameForms(serviceName) {
			candidates = append(candidates, fmt.Sprintf("%s/cmd/%s/config.yml", depth, name))
		}
	}
	candidates = append(candidates, fallbackConfigPaths...)

	for _, path := range candidates {
		if r.FileSystem.Exists(path) {
			return path
		}
	}
	return ""
}

func (r *Resolver) findEnvFile(serviceName string) string {
	var dirs []string
	for _, depth := range searchDepths {
		for _, name := range serviceNameForms(serviceName) {
			dirs = append(dirs,
				fmt.Sprintf("%s/cmd/%s", depth, name),
				fmt.Sprintf("%s/config/%s", depth, name),
			)
		}
		dirs = append(dirs, depth+"/config", depth)
	}

	// A service-specific .env wins over the generic one at any depth.
	for _, envName := range []string{".env." + serviceName, ".env"} {
		for _, dir := range dirs {
			if path := dir + "/" + envName; r.FileSystem.Exists(path) {
				return path
			}
		}
	}
	return ""
}

// LoaderConfig holds the loader's dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// LoaderOption adjusts how LoadConfig locates and reads its sources.
type LoaderOption func(*LoaderConfig)

// WithFileSystem substitutes the filesystem the loader resolves against.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(o *LoaderConfig) { o.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path, skipping the search.
func WithConfigFile(path string) LoaderOption {
	return func(o *LoaderConfig) { o.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path, skipping the search.
func WithEnvFile(path string) LoaderOption {
	return func(o *LoaderConfig) { o.EnvFile = path }
}

// LoadConfig loads configuration for a service into cfg. It merges, in
// order: a config.yml found in the standard locations, process environment
// variables, and a .env file. Later sources win, so an exported
// OIDC_CLIENT_SECRET overrides the file value.
func LoadConfig(serviceName string, cfg any, opts ...LoaderOption) error {
	var lcfg LoaderConfig
	for _, opt := range opts {
		opt(&lcfg)
	}
	if lcfg.FileSystem == nil {
		lcfg.FileSystem = RealFileSystem{}
	}

	r := &Resolver{FileSystem: lcfg.FileSystem}
	files := r.ResolveFiles(serviceName, lcfg)

	vp := viper.New()

	if files.ConfigFile != "" && lcfg.FileSystem.Exists(files.ConfigFile) {
		vp.SetConfigFile(files.ConfigFile)
		if err := vp.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: could not read %s: %v\n", files.ConfigFile, err)
		}
	}

	vp.AutomaticEnv()
	bindEnvVars(vp)

	if files.EnvFile != "" && lcfg.FileSystem.Exists(files.EnvFile) {
		if err := lcfg.FileSystem.LoadEnv(files.EnvFile); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: could not load %s: %v\n", files.EnvFile, err)
		} else {
			// Pick up the variables the .env file just added.
			bindEnvVars(vp)
		}
	}

	if err := vp.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal config for service %s: %w", serviceName, err)
	}

	return nil
}

// bindEnvVars force-sets every environment variable into viper under all
// key shapes a nested config struct might use. AutomaticEnv alone cannot
// map OIDC_CLIENT_SECRET onto oidc.client_secret, so each variable is set
// explicitly under its variants.
func bindEnvVars(vp *viper.Viper) {
	for _, pair := range os.Environ() {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		for _, variant := range envKeyVariants(key) {
			vp.Set(variant, value)
		}
	}
}

// envKeyVariants maps an UPPER_SNAKE environment key onto the nested viper
// keys it could address: the flat lowercase form, the fully dotted form,
// and every split between a dotted prefix and an underscored remainder.
// OIDC_CLIENT_SECRET yields oidc_client_secret, oidc.client.secret and
// oidc.client_secret.
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) == 1 {
		return []string{lower}
	}

	variants := []string{lower, strings.ReplaceAll(lower, "_", ".")}
	for i := 1; i < len(parts)-1; i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	return variants
}
