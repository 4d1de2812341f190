package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/fuelwatch/internal/adapter/fuelcard"
	"github.com/iho/fuelwatch/internal/adapter/telegram"
	"github.com/iho/fuelwatch/internal/domain"
	"github.com/iho/fuelwatch/internal/infrastructure/config"
	"github.com/iho/fuelwatch/internal/infrastructure/logger"
	"github.com/iho/fuelwatch/internal/usecase"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fuelwatch",
		Short: "Fuel-card wallet balance monitor",
		Long:  `Monitors a prepaid fuel-card wallet balance and alerts over Telegram when it falls below a threshold.`,
	}

	rootCmd.AddCommand(checkCmd(), serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "check",
		Short:        "Run a single balance check",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			_, err = app.check.Run(cmd.Context())
			return err
		},
	}
}

// app bundles the wired components of one process.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	check  *usecase.CheckUseCase
}

func newApp() (*app, error) {
	// A local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if cfg.Debug {
		log = log.Level(zerolog.DebugLevel)
	}

	// Credentials are checked before anything touches the network.
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("configuration incomplete")
		return nil, err
	}

	threshold, err := cfg.Threshold()
	if err != nil {
		log.Error().Err(err).Msg("invalid threshold")
		return nil, err
	}

	mode, err := domain.ParseBalanceMode(cfg.BalanceMode)
	if err != nil {
		log.Error().Err(err).Msg("invalid balance mode")
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn().Str("timezone", cfg.Timezone).Msg("unknown timezone, using local time")
		loc = time.Local
	}

	client := fuelcard.NewClient(fuelcard.Config{
		BaseURL:    cfg.FuelcardAPIURL,
		APIKey:     cfg.FuelcardAPIKey,
		APIVersion: cfg.FuelcardAPIVersion,
		Timeout:    cfg.RequestTimeout,
		Debug:      cfg.Debug,
	}, log)

	notifier := telegram.NewNotifier(telegram.Config{
		BotToken: cfg.TelegramBotToken,
		ChatID:   cfg.TelegramChatID,
		Timeout:  cfg.RequestTimeout,
	})

	params := usecase.CheckParams{
		Threshold: threshold,
		Mode:      mode,
		WalletID:  cfg.WalletID,
		Currency: domain.CurrencyFilter{
			GoodsAliases: cfg.CurrencyAliases,
			NumericCode:  cfg.CurrencyNumeric,
			AlphaCode:    cfg.Currency,
		},
		Location:       loc,
		CreditKeywords: cfg.CreditKeywords,
	}

	return &app{
		cfg:    cfg,
		logger: log,
		check:  usecase.NewCheckUseCase(client, client, notifier, params, log),
	}, nil
}
