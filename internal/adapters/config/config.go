package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	postgresStorage "github.com/Badsnus/qrgen-studio/internal/adapters/database/postgres"
	redisStorage "github.com/Badsnus/qrgen-studio/internal/adapters/database/redis"
	"github.com/Badsnus/qrgen-studio/internal/adapters/payment"
	"github.com/Badsnus/qrgen-studio/internal/domain/service"
	"github.com/Badsnus/qrgen-studio/internal/domain/utils/location"
	"github.com/Badsnus/qrgen-studio/pkg/logger"
	"github.com/Badsnus/qrgen-studio/pkg/logo"
	"github.com/Badsnus/qrgen-studio/pkg/smtp"
)

type Config struct {
	Debug       bool
	SiteURL     string
	LogoMaxSize int
	ExportSize  int

	Preview  service.PreviewConfig
	Export   service.ExportConfig
	Checkout service.CheckoutConfig
	Capture  service.CaptureConfig
	Payment  payment.Config
	SMTP     smtp.Config
	Redis    redisStorage.Options
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("settings.timezone", "UTC")
	v.SetDefault("settings.logs-dir", "logs")
	v.SetDefault("service.database.port", 5432)
	v.SetDefault("service.database.sslmode", "disable")
	v.SetDefault("service.redis.host", "localhost")
	v.SetDefault("service.redis.port", 6379)
	v.SetDefault("service.smtp.port", 587)
	v.SetDefault("service.payment.base-url", "http://localhost:3001")
	v.SetDefault("service.payment.timeout", 10*time.Second)
	v.SetDefault("service.payment.retries", 2)
	v.SetDefault("qr.site-url", "https://qrgen.studio")
	v.SetDefault("qr.preview.size", service.DefaultPreviewSize)
	v.SetDefault("qr.preview.debounce", service.DefaultPreviewDebounce)
	v.SetDefault("qr.export.grace-period", service.DefaultGracePeriod)
	v.SetDefault("qr.export.default-size", service.DefaultExportSize)
	v.SetDefault("qr.logo.max-size", logo.DefaultMaxSize)
	v.SetDefault("qr.checkout.draft-ttl", service.DefaultDraftTTL)
	v.SetDefault("qr.checkout.entitlement-ttl", service.DefaultEntitlementTTL)
}

// Load reads the yaml config at path (config.yaml in the working directory when empty).
// A missing default file is not an error: every key has a default. Environment variables
// like QRGEN_SERVICE_DATABASE_PASSWORD override the file.
func Load(path string) (*Config, error) {
	v := viper.GetViper()
	setDefaults(v)
	v.SetEnvPrefix("qrgen")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	siteURL := strings.TrimRight(v.GetString("qr.site-url"), "/")
	cfg := &Config{
		Debug:       v.GetBool("settings.debug"),
		SiteURL:     siteURL,
		LogoMaxSize: v.GetInt("qr.logo.max-size"),
		ExportSize:  v.GetInt("qr.export.default-size"),
		Preview: service.PreviewConfig{
			Size:     v.GetInt("qr.preview.size"),
			Debounce: v.GetDuration("qr.preview.debounce"),
		},
		Export: service.ExportConfig{
			GracePeriod: v.GetDuration("qr.export.grace-period"),
		},
		Checkout: service.CheckoutConfig{
			SuccessURL:     siteURL + "/?payment=success",
			CancelURL:      siteURL + "/?payment=cancelled",
			DraftTTL:       v.GetDuration("qr.checkout.draft-ttl"),
			EntitlementTTL: v.GetDuration("qr.checkout.entitlement-ttl"),
		},
		Capture: service.CaptureConfig{
			CallbackURL: siteURL + "/auth/callback",
		},
		Payment: payment.Config{
			BaseURL: v.GetString("service.payment.base-url"),
			Timeout: v.GetDuration("service.payment.timeout"),
			Retries: v.GetInt("service.payment.retries"),
		},
		SMTP: smtp.Config{
			Host:     v.GetString("service.smtp.host"),
			Port:     v.GetInt("service.smtp.port"),
			Username: v.GetString("service.smtp.username"),
			Password: v.GetString("service.smtp.password"),
			From:     v.GetString("service.smtp.email"),
			Domain:   v.GetString("service.smtp.domain"),
		},
		Redis: redisStorage.Options{
			Host:     v.GetString("service.redis.host"),
			Port:     v.GetInt("service.redis.port"),
			Password: v.GetString("service.redis.password"),
		},
	}
	if !service.ValidExportSize(cfg.ExportSize) {
		return nil, fmt.Errorf("qr.export.default-size: %d is not an export size", cfg.ExportSize)
	}
	return cfg, nil
}

// InitLogger sets up the global logger from the settings.* keys.
func InitLogger() error {
	return logger.Init(logger.Config{
		Debug:        viper.GetBool("settings.debug"),
		TimeLocation: location.Location(),
		LogToFile:    viper.GetBool("settings.log-to-file"),
		LogsDir:      viper.GetString("settings.logs-dir"),
	})
}

// OpenDatabase connects to postgres and migrates the schema.
func OpenDatabase(ctx context.Context) (*gorm.DB, error) {
	gormConfig := &gorm.Config{}
	if viper.GetBool("settings.debug") {
		gormConfig.Logger = gormLogger.New(
			log.New(os.Stderr, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
	}

	database, err := gorm.Open(postgres.Open(DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}
	if err := database.WithContext(ctx).AutoMigrate(postgresStorage.Migrations...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}

func DSN() string {
	return fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=%s TimeZone=%s",
		viper.GetString("service.database.user"),
		viper.GetString("service.database.password"),
		viper.GetString("service.database.name"),
		viper.GetString("service.database.host"),
		viper.GetInt("service.database.port"),
		viper.GetString("service.database.sslmode"),
		location.Location().String(),
	)
}
