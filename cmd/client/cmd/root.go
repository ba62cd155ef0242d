package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"datasets/cmd/client/cmd/dataset"
	"datasets/cmd/client/cmd/types"
	"datasets/internal/app/client"
	"datasets/internal/app/client/config"
	"datasets/internal/utils/logger"
)

var (
	cfgFile    string
	serverURL  string
	password   string
	jsonOutput bool
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Command line client for the datasets service",
	Long: `datasets talks to a datasets server: list and read datasets,
create them, add sentences to open ones, and edit or delete the ones
you hold the password for.`,
	PersistentPreRunE: setupClient,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			color.New(color.FgRed).Fprintf(os.Stderr, "Error: %s\n", apiErr.Message)
		} else {
			color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func setupClient(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	level := "error"
	if debug {
		level = "debug"
	}
	log := logger.NewWithLevel(cfg.Env, level)

	cmd.SetContext(types.WithEnv(cmd.Context(), &types.Env{
		Client:   client.New(cfg, log),
		JSON:     jsonOutput,
		Password: password,
	}))
	return nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.StringVar(&serverURL, "server", "", "server address, overrides SERVER_ADDRESS")
	flags.StringVarP(&password, "password", "p", "", "dataset password; prompted for when needed and not set")
	flags.BoolVar(&jsonOutput, "json", false, "print raw JSON")
	flags.BoolVar(&debug, "debug", false, "log requests")

	rootCmd.AddCommand(
		dataset.HealthCmd,
		dataset.ListCmd,
		dataset.GetCmd,
		dataset.VerifyCmd,
		dataset.AddCmd,
		dataset.CreateCmd,
		dataset.DeleteCmd,
		dataset.EditCmd,
	)
}
