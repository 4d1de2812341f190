package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration. It is read once at startup
// and immutable afterwards; components receive the pieces they need.
type Config struct {
	// Fuel-card API
	FuelcardAPIKey     string        `env:"FUELCARD_API_KEY"`
	FuelcardAPIURL     string        `env:"FUELCARD_API_URL"     envDefault:"https://api-fuelcards.wog.ua"`
	FuelcardAPIVersion string        `env:"FUELCARD_API_VERSION" envDefault:"1.0"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT"      envDefault:"30s"`

	// Telegram
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `env:"TELEGRAM_CHAT_ID"`

	// Balance check
	BalanceThreshold string   `env:"BALANCE_THRESHOLD" envDefault:"110000.00"`
	BalanceMode      string   `env:"BALANCE_MODE"      envDefault:"opening"`
	WalletID         string   `env:"WALLET_ID"         envDefault:""`
	Timezone         string   `env:"TIMEZONE"          envDefault:"Europe/Kyiv"`
	Currency         string   `env:"CURRENCY"          envDefault:"UAH"`
	CurrencyNumeric  string   `env:"CURRENCY_NUMERIC"  envDefault:"980"`
	CurrencyAliases  []string `env:"CURRENCY_ALIASES"  envDefault:"грн,uah" envSeparator:","`
	CreditKeywords   []string `env:"CREDIT_KEYWORDS"   envSeparator:","`

	// Serve mode
	CheckInterval time.Duration `env:"CHECK_INTERVAL" envDefault:"1h"`
	HTTPPort      string        `env:"HTTP_PORT"      envDefault:"8080"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	Debug     bool   `env:"DEBUG"      envDefault:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the credentials that must exist before any network call
// is made.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.FuelcardAPIKey) == "" {
		missing = append(missing, "FUELCARD_API_KEY")
	}
	if strings.TrimSpace(c.TelegramBotToken) == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if strings.TrimSpace(c.TelegramChatID) == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Threshold parses the configured alert threshold. A threshold that does
// not parse must abort startup, not silently become zero.
func (c *Config) Threshold() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(c.BalanceThreshold))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid BALANCE_THRESHOLD %q: %w", c.BalanceThreshold, err)
	}
	return d, nil
}
