package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	CounterBackendPostgres = "postgres"
	CounterBackendRedis    = "redis"
)

// Configはアプリ全体の設定
type Config struct {
	Port     string // サーバーポート（8080）
	GoEnv    string // dev/prod
	LogLevel string // debug/info/warn/error

	DatabaseURL      string // あれば POSTGRES_* より優先
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	PostgresSSLMode  string

	AuthSecret   string // IDトークンの署名シークレット
	AuthIssuer   string // 空なら iss を検証しない
	AuthAudience string // 空なら aud を検証しない

	StripeKey       string
	SiteDomain      string // 決済後の戻り先（フロント）
	PaymentCurrency string // 小数2桁の通貨のみ（金額は AmountTotal/100 で記録する）

	CounterBackend string // postgres/redis
	RedisAddr      string

	RequestTimeout time.Duration
	GatewayTimeout time.Duration

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	reqTimeout, err := durationDefault("REQUEST_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	gwTimeout, err := durationDefault("GATEWAY_TIMEOUT", 8*time.Second)
	if err != nil {
		return Config{}, err
	}
	burst, err := atoiDefault("RATE_LIMIT_BURST", 20)
	if err != nil {
		return Config{}, err
	}
	rps, err := floatDefault("RATE_LIMIT_RPS", 10)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:     getenv("PORT", "8080"),
		GoEnv:    os.Getenv("GO_ENV"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		AuthSecret:   os.Getenv("AUTH_SECRET"),
		AuthIssuer:   os.Getenv("AUTH_ISSUER"),
		AuthAudience: os.Getenv("AUTH_AUDIENCE"),

		StripeKey:       os.Getenv("STRIPE_KEY"),
		SiteDomain:      strings.TrimRight(os.Getenv("SITE_DOMAIN"), "/"),
		PaymentCurrency: strings.ToLower(getenv("PAYMENT_CURRENCY", "usd")),

		CounterBackend: getenv("COUNTER_BACKEND", CounterBackendPostgres),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),

		RequestTimeout: reqTimeout,
		GatewayTimeout: gwTimeout,

		CORSOrigins:    splitList(getenv("CORS_ORIGINS", "*")),
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
	}

	//必須チェック
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}
	if cfg.DatabaseURL == "" {
		if cfg.PostgresUser == "" {
			return Config{}, fmt.Errorf("POSTGRES_USER is required")
		}
		if cfg.PostgresDB == "" {
			return Config{}, fmt.Errorf("POSTGRES_DB is required")
		}
		if cfg.PostgresHost == "" {
			return Config{}, fmt.Errorf("POSTGRES_HOST is required")
		}
	}
	if cfg.AuthSecret == "" {
		return Config{}, fmt.Errorf("AUTH_SECRET is required")
	}
	if cfg.StripeKey == "" {
		return Config{}, fmt.Errorf("STRIPE_KEY is required")
	}
	if cfg.SiteDomain == "" {
		return Config{}, fmt.Errorf("SITE_DOMAIN is required")
	}
	if !twoDecimalCurrency(cfg.PaymentCurrency) {
		return Config{}, fmt.Errorf("PAYMENT_CURRENCY must be a two-decimal currency: %s", cfg.PaymentCurrency)
	}
	switch cfg.CounterBackend {
	case CounterBackendPostgres, CounterBackendRedis:
	default:
		return Config{}, fmt.Errorf("COUNTER_BACKEND must be postgres or redis")
	}

	return cfg, nil
}

// 最小単位が 1/100 でない通貨（Stripe の zero-decimal / three-decimal）
var nonCentCurrencies = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true,
	"krw": true, "mga": true, "pyg": true, "rwf": true, "ugx": true, "vnd": true,
	"vuv": true, "xaf": true, "xof": true, "xpf": true,
	"bhd": true, "jod": true, "kwd": true, "omr": true, "tnd": true,
}

func twoDecimalCurrency(code string) bool {
	return len(code) == 3 && !nonCentCurrencies[code]
}

// Postgres 接続文字列
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func (c Config) IsProduction() bool {
	return c.GoEnv == "prod" || c.GoEnv == "production"
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func floatDefault(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return f, nil
}

func durationDefault(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration (e.g. 5s): %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
