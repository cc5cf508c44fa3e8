// Package main is the entry point for the artcollector server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kailas-cloud/artcollector/internal/config"
	"github.com/kailas-cloud/artcollector/internal/version"
)

// rootCmd runs the server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "artcollector",
	Short: "Search the Harvard Art Museums collection",
	Long: `artcollector serves a search page over the Harvard Art Museums catalog:
facet the collection by keyword, century and classification, feature an object,
and click its culture, technique, medium or people to search again.

Run without a subcommand to start the server. The search and options
subcommands query the catalog directly from the terminal.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of artcollector",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("artcollector %s\n", version.String())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("env", "local", "environment: local, dev, docker, prod, test")
	rootCmd.PersistentFlags().String("config", "", "config file (default: config/<env>.yaml)")
	_ = viper.BindPFlag("env", rootCmd.PersistentFlags().Lookup("env"))
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	viper.SetEnvPrefix("ARTCOLLECTOR")
	viper.AutomaticEnv()
	// The catalog key is commonly exported without the prefix.
	_ = viper.BindEnv("api_key", "ARTCOLLECTOR_API_KEY", "HAM_API_KEY")
}

// loadConfig resolves the environment and reads its YAML config.
func loadConfig() (config.Config, string, error) {
	env := viper.GetString("env")

	override := func(c *config.Config) {
		if key := viper.GetString("api_key"); key != "" && c.Catalog.APIKey == "" {
			c.Catalog.APIKey = key
		}
		if port := viper.GetInt("port"); port > 0 {
			c.HTTP.Port = port
		}
	}

	var (
		cfg config.Config
		err error
	)
	if path := viper.GetString("config"); path != "" {
		cfg, err = config.LoadFile(path, override)
	} else {
		cfg, err = config.Load(env, override)
	}
	return cfg, env, err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
