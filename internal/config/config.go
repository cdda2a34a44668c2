package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type AppConfig struct {
	Env          string `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	StoreDB      `yaml:"store_db"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka_service"`
	Payment      PaymentConfig `yaml:"payment"`
	Momo         MomoConfig    `yaml:"momo"`
	VNPay        VNPayConfig   `yaml:"vnpay"`
	JWT          JWTConfig     `yaml:"jwt"`
}

type HTTPServer struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type StoreDB struct {
	Dsn           string `yaml:"dsn" env:"STORE_DB_DSN"`
	MigrationPath string `yaml:"migration_path" env:"STORE_DB_MIGRATIONS" env-default:"migrations"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
}

type KafkaService struct {
	Host  string `yaml:"host" env:"KAFKA_HOST"`
	Port  string `yaml:"port" env:"KAFKA_PORT"`
	Topic string `yaml:"topic" env:"KAFKA_PAYMENT_TOPIC" env-default:"payment-events"`
}

type PaymentConfig struct {
	// RetryPeriod is how long a pending payment stays open for retries
	// before the sweep cancels its order.
	RetryPeriod time.Duration `yaml:"retry_period" env:"PAYMENT_RETRY_PERIOD" env-default:"1h"`
	// SweepInterval is the expiry reconciliation schedule.
	SweepInterval time.Duration `yaml:"sweep_interval" env:"PAYMENT_SWEEP_INTERVAL" env-default:"1h"`
	// GatewayTimeout bounds outbound provider HTTP calls.
	GatewayTimeout time.Duration `yaml:"gateway_timeout" env:"PAYMENT_GATEWAY_TIMEOUT" env-default:"10s"`
}

type MomoConfig struct {
	PartnerCode string `yaml:"partner_code" env:"MOMO_PARTNER_CODE"`
	AccessKey   string `yaml:"access_key" env:"MOMO_ACCESS_KEY"`
	SecretKey   string `yaml:"secret_key" env:"MOMO_SECRET_KEY"`
	RedirectURL string `yaml:"redirect_url" env:"MOMO_REDIRECT_URL"`
	IpnURL      string `yaml:"ipn_url" env:"MOMO_IPN_URL"`
	Endpoint    string `yaml:"endpoint" env:"MOMO_ENDPOINT" env-default:"https://test-payment.momo.vn"`
}

type VNPayConfig struct {
	TmnCode    string `yaml:"tmn_code" env:"VNPAY_TMN_CODE"`
	HashSecret string `yaml:"hash_secret" env:"VNPAY_HASH_SECRET"`
	PayURL     string `yaml:"pay_url" env:"VNPAY_URL"`
	ReturnURL  string `yaml:"return_url" env:"VNPAY_RETURN_URL"`
	Version    string `yaml:"version" env:"VNPAY_VERSION" env-default:"2.1.0"`
}

type JWTConfig struct {
	Secret string `yaml:"secret" env:"JWT_SECRET"`
}

func MustLoad() *AppConfig {
	configPath := os.Getenv("BREWACO_CONFIG_PATH")
	if configPath == "" {
		log.Fatalf("BREWACO_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	var cfg AppConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
