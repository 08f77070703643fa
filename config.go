package recipebuilder

import (
	"errors"

	"github.com/joeshaw/envdecode"
)

type StoreConfig struct {
	Backend  string `env:"RECIPE_STORE_BACKEND,default=file"`
	Dir      string `env:"RECIPE_STORE_DIR,default=artifacts"`
	Key      string `env:"RECIPE_STORE_KEY,default=saved-recipes"`
	S3Bucket string `env:"RECIPE_STORE_S3_BUCKET"`
	S3Prefix string `env:"RECIPE_STORE_S3_PREFIX,default=recipes/"`
}

type CatalogConfig struct {
	// Path to a JSON or YAML catalog file. Empty means the built-in sample catalog.
	Path string `env:"CATALOG_PATH"`
	// S3Key reads the catalog from the store bucket instead of disk.
	S3Key string `env:"CATALOG_S3_KEY"`
}

type NotifyConfig struct {
	SlackWebhookURL string `env:"SLACK_WEBHOOK_URL"`
	SlackChannel    string `env:"SLACK_CHANNEL,default=#recipes"`
	EventLogPath    string `env:"RECIPE_EVENT_LOG"`
}

type BatchConfig struct {
	MaxSteps int `env:"BATCH_MAX_STEPS,default=50"`
}

type Config struct {
	Store       StoreConfig
	Catalog     CatalogConfig
	Notify      NotifyConfig
	Batch       BatchConfig
	OtelEnabled bool `env:"OTEL_ENABLED,default=false"`
}

// LoadConfig decodes Config from the environment. Values that do not parse
// as their field's type are an error rather than a silent zero.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, err
	}
	return cfg, nil
}
