package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/speaknote/remind/internal/profile"
	"github.com/speaknote/remind/server"
	"github.com/speaknote/remind/store"
	"github.com/speaknote/remind/store/db"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "speaknote",
	Short: "A personal reminder service that understands noisy text, voice and images",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().String("mode", "dev", `mode of server, can be "prod", "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "binding address of server")
	rootCmd.PersistentFlags().Int("port", 8081, "binding port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("speaknote")
	viper.AutomaticEnv()
}

func run(_ *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	instanceProfile := &profile.Profile{
		Mode:    viper.GetString("mode"),
		Addr:    viper.GetString("addr"),
		Port:    viper.GetInt("port"),
		Data:    viper.GetString("data"),
		Driver:  viper.GetString("driver"),
		DSN:     viper.GetString("dsn"),
		Version: version,
	}
	instanceProfile.FromEnv()
	if err := instanceProfile.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if instanceProfile.Secret == "" {
		// Tokens stop verifying across restarts without a configured
		// secret; fine for dev, set SPEAKNOTE_SECRET in prod.
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return fmt.Errorf("failed to generate secret: %w", err)
		}
		instanceProfile.Secret = hex.EncodeToString(buf)
		slog.Warn("no SPEAKNOTE_SECRET configured, generated an ephemeral one")
	}

	dbDriver, err := db.NewDBDriver(instanceProfile)
	if err != nil {
		return fmt.Errorf("failed to create db driver: %w", err)
	}

	storeInstance := store.New(dbDriver, instanceProfile)
	defer storeInstance.Close()
	if err := storeInstance.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	s, err := server.NewServer(ctx, instanceProfile, storeInstance)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	slog.Info("starting speaknote",
		slog.String("version", version),
		slog.String("mode", instanceProfile.Mode),
		slog.String("driver", instanceProfile.Driver))

	return s.Start(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}
