package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/explain"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/logger"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/planner"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/screening"
)

const (
	app = "cvnlp"
)

type Config struct {
	AI          *AIConfig           `mapstructure:"ai"`
	Explanation *explain.Thresholds `mapstructure:"explanation"`
	Screening   *ScreeningConfig    `mapstructure:"screening"`
	Courses     *CoursesConfig      `mapstructure:"courses"`
}

type AIConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	Provider           string        `mapstructure:"provider"`
	NameRecognition    bool          `mapstructure:"name-recognition"`
	SemanticSimilarity bool          `mapstructure:"semantic-similarity"`
	Gemini             *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey         string `mapstructure:"api-key"`
	APIKeyFile     string `mapstructure:"api-key-file"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding-model"`
	MaxRetries     int    `mapstructure:"max-retries"`
	MaxLogLength   int    `mapstructure:"max-log-length"`
}

type ScreeningConfig struct {
	MinimumScore float64 `mapstructure:"minimum-score"`
	Top          int     `mapstructure:"top"`
	Concurrency  int     `mapstructure:"concurrency"`
}

type CoursesConfig struct {
	Top int `mapstructure:"top"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "cvnlp scores résumés against job descriptions and explains the result",
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

	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cvnlp.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults() {
	viper.SetDefault("ai.enabled", false)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.name-recognition", true)
	viper.SetDefault("ai.semantic-similarity", true)
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.embedding-model", "text-embedding-004")
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("ai.gemini.max-log-length", 200)
	viper.SetDefault("explanation.high-threshold", explain.DefaultHighThreshold)
	viper.SetDefault("explanation.medium-threshold", explain.DefaultMediumThreshold)
	viper.SetDefault("screening.minimum-score", 0)
	viper.SetDefault("screening.top", 0)
	viper.SetDefault("screening.concurrency", screening.DefaultConcurrency)
	viper.SetDefault("courses.top", planner.DefaultTopCourses)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Defaults are enough to run without a config file, but an explicitly
	// given or broken one must parse.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

// bootstrap builds the logger and config every command starts with.
func bootstrap() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil || config.AI == nil || config.AI.Gemini == nil || config.Explanation == nil ||
		config.Screening == nil || config.Courses == nil {
		logger.Fatal("config is incomplete")
	}

	logger.Debug("starting", zap.String("app", app), zap.String("version", version),
		zap.String("config_file", viper.ConfigFileUsed()))

	return logger, config
}
