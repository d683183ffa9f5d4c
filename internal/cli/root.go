package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pratik-mahalle/cloudmgr/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultServerURL = "http://localhost:8000"

var (
	cfgFile      string
	outputFormat string
	serverURL    string
	apiClient    *client.Client
	out          io.Writer = os.Stdout
)

// NewRootCmd builds the cloudmgr command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cloudmgr",
		Short: "Cloud Manager CLI - provision and track cloud resources",
		Long: `Cloud Manager CLI talks to the Cloud Manager API to create, inspect,
update and delete resources on AWS, GCP and Azure, and to read their
metrics, alerts and action log.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			out = cmd.OutOrStdout()
			initConfig()
			if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
				return nil
			}
			return initClient()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.cloudmgr/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL (overrides config)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newResourceCmd())
	rootCmd.AddCommand(newAlertCmd())
	rootCmd.AddCommand(newLogsCmd())
	rootCmd.AddCommand(newUsersCmd())

	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cloudmgr"), nil
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if dir, err := configDir(); err == nil {
		viper.AddConfigPath(dir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("CLOUDMGR")
	viper.AutomaticEnv()

	viper.SetDefault("server_url", defaultServerURL)
	viper.SetDefault("output", "table")

	_ = viper.ReadInConfig()
}

func initClient() error {
	url := viper.GetString("server_url")
	if serverURL != "" {
		url = serverURL
	}

	apiClient = client.NewClient(client.Config{
		BaseURL: url,
		Timeout: viper.GetDuration("timeout"),
	})
	return nil
}

func getOutputFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	return viper.GetString("output")
}

// configPath is where config writes go
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
