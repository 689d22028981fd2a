package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "creator-roster"

	defaultRosterFile = "roster.csv"
)

type Config struct {
	RosterFile string        `mapstructure:"roster-file"`
	Match      *MatchConfig  `mapstructure:"match"`
	Filter     *FilterConfig `mapstructure:"filter"`
	AI         *AIConfig     `mapstructure:"ai"`
}

type MatchConfig struct {
	TopN int `mapstructure:"top-n"`
}

type FilterConfig struct {
	Statuses                 []string `mapstructure:"statuses"`
	Verticals                []string `mapstructure:"verticals"`
	PreferredBrandCategories []string `mapstructure:"preferred-brand-categories"`
	AvoidedBrandCategories   []string `mapstructure:"avoided-brand-categories"`
}

type AIConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Provider        string        `mapstructure:"provider"`
	MinimumFitScore float64       `mapstructure:"minimum-fit-score"`
	Gemini          *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "creator-roster keeps a roster of content creators and matches them with brand deals",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("roster-file", "ROSTER_FILE"); err != nil {
		log.Fatalf("binding ROSTER_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	viper.SetDefault("roster-file", defaultRosterFile)
	viper.SetDefault("match.top-n", 5)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.minimum-fit-score", 0.5)
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("ai.gemini.max-log-length", 200)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is creator-roster.yaml in current directory)")
	rootCmd.PersistentFlags().StringP("roster", "r", "", "roster CSV file (default is roster.csv)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("roster-file", rootCmd.PersistentFlags().Lookup("roster"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The config file is optional unless it was requested explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Match == nil {
		config.Match = &MatchConfig{}
	}
	if config.Filter == nil {
		config.Filter = &FilterConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}

	return &config, nil
}
