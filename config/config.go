package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Price feed modes. "fixed" is a sandbox-only mode and is never selected implicitly.
const (
	PriceFeedModeHermes = "hermes"
	PriceFeedModeFixed  = "fixed"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Log          LogConfig          `mapstructure:"log"`
	Ledger       LedgerConfig       `mapstructure:"ledger"`
	Merchant     MerchantConfig     `mapstructure:"merchant"`
	PriceFeed    PriceFeedConfig    `mapstructure:"price_feed"`
	Conversion   ConversionConfig   `mapstructure:"conversion"`
	Confirmation ConfirmationConfig `mapstructure:"confirmation"`
	Hosted       HostedConfig       `mapstructure:"hosted"`
	Ticket       TicketConfig       `mapstructure:"ticket"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Database     DatabaseConfig     `mapstructure:"database"`
	RateLimit    RateLimitConfig    `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`     // debug, release, test
	BaseURL string `mapstructure:"base_url"` // public origin for hosted redirect URLs; falls back to the request Origin
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// LedgerConfig configures the Solana JSON-RPC connection.
type LedgerConfig struct {
	RPCURL               string        `mapstructure:"rpc_url"`
	Cluster              string        `mapstructure:"cluster"`               // devnet, testnet, mainnet-beta
	Commitment           string        `mapstructure:"commitment"`            // finality target for confirmations
	CheckpointCommitment string        `mapstructure:"checkpoint_commitment"` // commitment used for getLatestBlockhash
	CheckpointValidity   time.Duration `mapstructure:"checkpoint_validity"`
	Timeout              time.Duration `mapstructure:"timeout"`
}

type MerchantConfig struct {
	Address string `mapstructure:"address"`
	Label   string `mapstructure:"label"`
	Message string `mapstructure:"message"`
}

type PriceFeedConfig struct {
	Mode          string        `mapstructure:"mode"`
	Endpoint      string        `mapstructure:"endpoint"`
	FeedID        string        `mapstructure:"feed_id"`
	Pair          string        `mapstructure:"pair"`
	QuoteCurrency string        `mapstructure:"quote_currency"`
	FixedPrice    string        `mapstructure:"fixed_price"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxStaleness  time.Duration `mapstructure:"max_staleness"` // 0 disables the staleness check
}

type ConversionConfig struct {
	BufferPercent string `mapstructure:"buffer_percent"` // decimal string, e.g. "0.5" for 0.5%
}

// Buffer parses BufferPercent as a fixed-point decimal.
func (c ConversionConfig) Buffer() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(c.BufferPercent))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing conversion.buffer_percent: %w", err)
	}
	return d, nil
}

type ConfirmationConfig struct {
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	MaxPollInterval time.Duration `mapstructure:"max_poll_interval"`
	DefaultTimeout  time.Duration `mapstructure:"default_timeout"`
	MaxWait         time.Duration `mapstructure:"max_wait"` // upper bound for ?wait= on the HTTP endpoint
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
}

type HostedConfig struct {
	SecretKey          string   `mapstructure:"secret_key"`
	PaymentMethodTypes []string `mapstructure:"payment_method_types"`
	DefaultCurrency    string   `mapstructure:"default_currency"`
	ProductName        string   `mapstructure:"product_name"`
	ProductDescription string   `mapstructure:"product_description"`
	SuccessPath        string   `mapstructure:"success_path"`
	CancelPath         string   `mapstructure:"cancel_path"`
}

// Enabled reports whether the hosted rail has credentials.
func (h HostedConfig) Enabled() bool {
	return h.SecretKey != ""
}

type TicketConfig struct {
	Secret string        `mapstructure:"secret"`
	Issuer string        `mapstructure:"issuer"`
	Grace  time.Duration `mapstructure:"grace"` // token lifetime past checkpoint expiry
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// RateLimitConfig holds per-minute request budgets per endpoint group.
type RateLimitConfig struct {
	Enabled       bool  `mapstructure:"enabled"`
	Quotes        int64 `mapstructure:"quotes"`
	Transfers     int64 `mapstructure:"transfers"`
	Confirmations int64 `mapstructure:"confirmations"`
	Sessions      int64 `mapstructure:"sessions"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: CKG_ (checkout gateway).
// Nested keys use underscore: CKG_LEDGER_RPC_URL, CKG_MERCHANT_ADDRESS, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("ledger.rpc_url", "https://api.devnet.solana.com")
	v.SetDefault("ledger.cluster", "devnet")
	v.SetDefault("ledger.commitment", "confirmed")
	v.SetDefault("ledger.checkpoint_commitment", "finalized")
	v.SetDefault("ledger.checkpoint_validity", "60s")
	v.SetDefault("ledger.timeout", "10s")

	v.SetDefault("merchant.address", "")
	v.SetDefault("merchant.label", "Checkout")
	v.SetDefault("merchant.message", "Payment for services")

	v.SetDefault("price_feed.mode", PriceFeedModeHermes)
	v.SetDefault("price_feed.endpoint", "https://hermes.pyth.network")
	v.SetDefault("price_feed.feed_id", "0xef0d8b6fda2ceba41da15d4095d1da392a0d2f8ed0c6c7bc0f4cfac8c280b56d")
	v.SetDefault("price_feed.pair", "SOL/USD")
	v.SetDefault("price_feed.quote_currency", "USD")
	v.SetDefault("price_feed.fixed_price", "")
	v.SetDefault("price_feed.timeout", "5s")
	v.SetDefault("price_feed.max_staleness", "60s")

	v.SetDefault("conversion.buffer_percent", "0.5")

	v.SetDefault("confirmation.poll_interval", "500ms")
	v.SetDefault("confirmation.max_poll_interval", "5s")
	v.SetDefault("confirmation.default_timeout", "60s")
	v.SetDefault("confirmation.max_wait", "30s")
	v.SetDefault("confirmation.cache_ttl", "10m")

	v.SetDefault("hosted.secret_key", "")
	v.SetDefault("hosted.payment_method_types", []string{"card", "us_bank_account", "paypal"})
	v.SetDefault("hosted.default_currency", "usd")
	v.SetDefault("hosted.product_name", "Payment")
	v.SetDefault("hosted.product_description", "Payment for services")
	v.SetDefault("hosted.success_path", "/success?session_id={CHECKOUT_SESSION_ID}")
	v.SetDefault("hosted.cancel_path", "/canceled")

	v.SetDefault("ticket.secret", "")
	v.SetDefault("ticket.issuer", "checkout-gateway")
	v.SetDefault("ticket.grace", "10m")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "checkout_gateway")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.quotes", 120)
	v.SetDefault("rate_limit.transfers", 30)
	v.SetDefault("rate_limit.confirmations", 240)
	v.SetDefault("rate_limit.sessions", 30)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: CKG_LEDGER_RPC_URL -> ledger.rpc_url
	v.SetEnvPrefix("CKG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional; env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate fails fast on configuration that would make the on-chain rail
// unsafe. Address syntax is checked separately by the ledger adapter.
func (c *Config) Validate() error {
	var errs []error

	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode))
	}

	if strings.TrimSpace(c.Merchant.Address) == "" {
		errs = append(errs, errors.New("merchant.address is required"))
	}

	if c.Ledger.RPCURL == "" {
		errs = append(errs, errors.New("ledger.rpc_url is required"))
	} else if u, err := url.Parse(c.Ledger.RPCURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("ledger.rpc_url %q is not an absolute URL", c.Ledger.RPCURL))
	}
	if c.Ledger.CheckpointValidity <= 0 {
		errs = append(errs, errors.New("ledger.checkpoint_validity must be positive"))
	}

	buffer, err := c.Conversion.Buffer()
	if err != nil {
		errs = append(errs, err)
	} else if !buffer.IsPositive() {
		errs = append(errs, errors.New("conversion.buffer_percent must be positive"))
	}

	switch c.PriceFeed.Mode {
	case PriceFeedModeHermes:
		if c.PriceFeed.Endpoint == "" || c.PriceFeed.FeedID == "" {
			errs = append(errs, errors.New("price_feed.endpoint and price_feed.feed_id are required in hermes mode"))
		}
	case PriceFeedModeFixed:
		if c.Server.Mode == "release" {
			errs = append(errs, errors.New("price_feed.mode=fixed is not allowed in release mode"))
		}
		p, err := decimal.NewFromString(c.PriceFeed.FixedPrice)
		if err != nil || !p.IsPositive() {
			errs = append(errs, fmt.Errorf("price_feed.fixed_price %q must be a positive decimal", c.PriceFeed.FixedPrice))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown price_feed.mode %q", c.PriceFeed.Mode))
	}

	if c.Server.Mode == "release" && len(c.Ticket.Secret) < 32 {
		errs = append(errs, errors.New("ticket.secret must be at least 32 bytes in release mode"))
	}

	return errors.Join(errs...)
}
