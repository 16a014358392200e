package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobfit"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Limits   LimitsConfig   `mapstructure:"limits"`
	Matching MatchingConfig `mapstructure:"matching"`
	AI       AIConfig       `mapstructure:"ai"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type LimitsConfig struct {
	MaxTextLength int `mapstructure:"max-text-length"`
}

type MatchingConfig struct {
	SimilarityThreshold float64 `mapstructure:"similarity-threshold"`
	EmbeddingDimensions int     `mapstructure:"embedding-dimensions"`
}

type AIConfig struct {
	Provider string       `mapstructure:"provider"`
	Gemini   GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile     string        `mapstructure:"api-key-file"`
	Model          string        `mapstructure:"model"`
	EmbeddingModel string        `mapstructure:"embedding-model"`
	MaxRetries     int           `mapstructure:"max-retries"`
	MaxLogLength   int           `mapstructure:"max-log-length"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobfit analyzes how well a resume fits a job description",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobfit.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Secrets and overrides may live in a local .env file.
	_ = godotenv.Load()

	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The defaults form a complete configuration, so a missing config file is
	// only an error when one was named explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func setDefaults() {
	viper.SetDefault("server.address", ":8000")
	viper.SetDefault("limits.max-text-length", 20000)
	viper.SetDefault("matching.similarity-threshold", 0.8)
	viper.SetDefault("matching.embedding-dimensions", 768)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.model", "gemini-2.0-flash")
	viper.SetDefault("ai.gemini.embedding-model", "gemini-embedding-001")
	viper.SetDefault("ai.gemini.max-retries", 2)
	viper.SetDefault("ai.gemini.max-log-length", 200)
	viper.SetDefault("ai.gemini.request-timeout", "60s")
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
