package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"jobmirror/internal/domain/listing"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultEnv          = EnvLocal
	defaultLogLevel     = "info"
	defaultStoreBaseURL = "https://api.docstore.dev"
)

// Config carries everything a run needs: the store credential, the master
// collection and the six public collections. It is validated before any
// remote call is made.
type Config struct {
	Env                string
	LogLevel           string
	StoreBaseURL       string
	StoreToken         string
	MasterCollectionID string
	PublicCollections  map[listing.CollectionKey]string
}

// Load reads configuration from the environment, optionally seeded from a
// .env file. A missing credential or collection id fails fast with an error
// enumerating every missing variable.
func Load(envFile string) (*Config, error) {
	path := envFile
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	} else if envFile != "" {
		return nil, fmt.Errorf("config file %s not found", envFile)
	}

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("STORE_BASE_URL", defaultStoreBaseURL)

	cfg := &Config{
		Env:                viper.GetString("APP_ENV"),
		LogLevel:           viper.GetString("LOG_LEVEL"),
		StoreBaseURL:       viper.GetString("STORE_BASE_URL"),
		StoreToken:         viper.GetString("STORE_API_TOKEN"),
		MasterCollectionID: viper.GetString("MASTER_COLLECTION_ID"),
		PublicCollections:  make(map[listing.CollectionKey]string),
	}
	for _, key := range listing.AllCollectionKeys() {
		cfg.PublicCollections[key] = viper.GetString(EnvVar(key))
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EnvVar names the environment variable carrying the collection id for a
// public catalog key, e.g. video.tier1 -> VIDEO_TIER1_COLLECTION_ID.
func EnvVar(key listing.CollectionKey) string {
	return strings.ToUpper(strings.ReplaceAll(string(key), ".", "_")) + "_COLLECTION_ID"
}

func (c *Config) validate() error {
	var missing []string
	if c.StoreToken == "" {
		missing = append(missing, "STORE_API_TOKEN")
	}
	if c.MasterCollectionID == "" {
		missing = append(missing, "MASTER_COLLECTION_ID")
	}
	for _, key := range listing.AllCollectionKeys() {
		if c.PublicCollections[key] == "" {
			missing = append(missing, EnvVar(key))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
