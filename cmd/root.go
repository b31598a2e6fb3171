package cmd

import (
	"context"
	"log"

	"github.com/recrutai/recrutai-cli/internal/logger"
	"github.com/recrutai/recrutai-cli/internal/recrutai"
	"github.com/recrutai/recrutai-cli/internal/session"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "recrutai"
)

type Config struct {
	APIURL      string      `mapstructure:"api-url"`
	SessionFile string      `mapstructure:"session-file"`
	Rank        *RankConfig `mapstructure:"rank"`
}

type RankConfig struct {
	MinScore         float64  `mapstructure:"min-score"`
	RequiredKeywords []string `mapstructure:"required-keywords"`
	ExcludeFile      string   `mapstructure:"exclude-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "recrutai is a cli for the RecrutAI platform: upload CVs, match them against job offers and rank candidates",
	}
)

// Execute executes the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	if err := viper.BindEnv("api-url", "RECRUTAI_API_URL"); err != nil {
		log.Fatalf("binding RECRUTAI_API_URL environment variable: %v", err)
	}
	if err := viper.BindEnv("session-file", "RECRUTAI_SESSION_FILE"); err != nil {
		log.Fatalf("binding RECRUTAI_SESSION_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is recrutai.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("api-url", "", "base URL of the RecrutAI backend")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("api-url", rootCmd.PersistentFlags().Lookup("api-url"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// An explicitly requested config file must parse.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app)

	// The config file is optional; flags and env vars cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}

	return config, nil
}

// newLogger builds the zap logger every command starts from.
func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

// newClient wires the session store and the API client from configuration.
func newClient(l *zap.Logger) (*recrutai.Client, error) {
	config, err := getConfig()
	if err != nil {
		return nil, err
	}

	sessionFile := config.SessionFile
	if sessionFile == "" {
		sessionFile, err = session.DefaultPath(app)
		if err != nil {
			return nil, err
		}
	}

	store := session.NewStore(sessionFile)
	return recrutai.New(config.APIURL, store, l), nil
}
