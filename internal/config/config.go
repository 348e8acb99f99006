package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"ENV"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`

	EmbeddingURL   string `mapstructure:"EMBEDDING_URL"`
	EmbeddingModel string `mapstructure:"EMBEDDING_MODEL"`
	EmbeddingDim   int    `mapstructure:"EMBEDDING_DIM"`

	BundleDir  string `mapstructure:"BUNDLE_DIR"`
	ETLWorkers int    `mapstructure:"ETL_WORKERS"`

	VectorMetric     string `mapstructure:"VECTOR_METRIC"`
	HNSWM            int    `mapstructure:"HNSW_M"`
	HNSWEfConstruct  int    `mapstructure:"HNSW_EF_CONSTRUCTION"`
	SearchMaxResults int    `mapstructure:"SEARCH_MAX_RESULTS"`

	APITokenSecret string `mapstructure:"API_TOKEN_SECRET"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("EMBEDDING_URL", "http://localhost:11434/api/embeddings")
	v.SetDefault("EMBEDDING_MODEL", "nomic-embed-text")
	v.SetDefault("EMBEDDING_DIM", 768)
	v.SetDefault("BUNDLE_DIR", "./bundles")
	v.SetDefault("ETL_WORKERS", 4)
	v.SetDefault("VECTOR_METRIC", "cosine")
	v.SetDefault("HNSW_M", 16)
	v.SetDefault("HNSW_EF_CONSTRUCTION", 64)
	v.SetDefault("SEARCH_MAX_RESULTS", 10)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("EMBEDDING_URL")
	v.BindEnv("EMBEDDING_MODEL")
	v.BindEnv("EMBEDDING_DIM")
	v.BindEnv("BUNDLE_DIR")
	v.BindEnv("ETL_WORKERS")
	v.BindEnv("VECTOR_METRIC")
	v.BindEnv("HNSW_M")
	v.BindEnv("HNSW_EF_CONSTRUCTION")
	v.BindEnv("SEARCH_MAX_RESULTS")
	v.BindEnv("API_TOKEN_SECRET")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks the values a run depends on before any connection is made.
func (c *Config) Validate() error {
	if c.EmbeddingDim < 1 {
		return fmt.Errorf("EMBEDDING_DIM must be positive, got %d", c.EmbeddingDim)
	}
	if c.ETLWorkers < 1 {
		return fmt.Errorf("ETL_WORKERS must be positive, got %d", c.ETLWorkers)
	}
	switch c.VectorMetric {
	case "cosine", "dot":
	default:
		return fmt.Errorf("VECTOR_METRIC must be \"cosine\" or \"dot\", got %q", c.VectorMetric)
	}
	if c.SearchMaxResults < 1 {
		return fmt.Errorf("SEARCH_MAX_RESULTS must be positive, got %d", c.SearchMaxResults)
	}
	return nil
}
