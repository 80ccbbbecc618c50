package main

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hirelens/hirelens/internal/config"
	"github.com/hirelens/hirelens/internal/logger"
)

const app = "hirelens"

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "Simulate how a resume moves through ATS, recruiter and interview gates",
		Long: `hirelens evaluates a resume against a job description the way the hiring
funnel would: an ATS keyword screen, a recruiter scan and an interview
readiness check. Every run is deterministic and produces stage scores,
pass probabilities, risk factors and concrete recommendations.`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is hirelens.yaml in the current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().Bool("json-logs", false, "json format for logging")

	viper.BindPFlag("logging.debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("logging.json", rootCmd.PersistentFlags().Lookup("json-logs"))

	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("reading config file: %v", err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app)

	// A missing default config file is fine; defaults and HIRELENS_* env
	// variables cover every key.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatalf("reading config file: %v", err)
		}
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

func newLogger() (*zap.Logger, error) {
	return logger.New(viper.GetBool("logging.json"), viper.GetBool("logging.debug"))
}
