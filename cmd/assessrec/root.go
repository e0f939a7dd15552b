package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kailas-cloud/assessrec/internal/config"
)

const app = "assessrec"

var rootCmd = &cobra.Command{
	Use:           app,
	Short:         "assessrec recommends assessments for a job description or query",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("env", "", "config environment: selects config/<env>.yaml (default: $ENV or local)")

	if err := viper.BindPFlag("env", rootCmd.PersistentFlags().Lookup("env")); err != nil {
		log.Fatalf("binding env flag: %v", err)
	}
	if err := viper.BindEnv("env", "ENV"); err != nil {
		log.Fatalf("binding ENV environment variable: %v", err)
	}
}

// currentEnv resolves the environment: --env flag, then ENV, then "local".
func currentEnv() string {
	if env := viper.GetString("env"); env != "" {
		return env
	}
	return config.GetEnv()
}
