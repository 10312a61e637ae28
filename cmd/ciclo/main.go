package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/ciclo/internal/ads"
	"github.com/terraincognita07/ciclo/internal/api"
	"github.com/terraincognita07/ciclo/internal/cli"
	"github.com/terraincognita07/ciclo/internal/cycle"
	"github.com/terraincognita07/ciclo/internal/db"
	"github.com/terraincognita07/ciclo/internal/i18n"
	"github.com/terraincognita07/ciclo/internal/services"
)

const minNotifyInterval = time.Second

func main() {
	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location
	dbPath := getEnv("DB_PATH", filepath.Join("data", "ciclo.db"))

	if len(os.Args) > 1 {
		if err := runCommand(os.Args[1], os.Args[2:], dbPath, location); err != nil {
			log.Fatalf("%s failed: %v", os.Args[1], err)
		}
		return
	}

	port, err := resolvePort()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	notifyInterval, err := resolveNotifyInterval()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	reminderDays, err := resolvePeriodReminderDays()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	adsConfig, err := resolveAdsConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	busyTimeout, err := resolveBusyTimeout()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	defaultLanguage := getEnv("DEFAULT_LANGUAGE", i18n.LangES)

	database, err := db.Open(db.SQLiteConfig{
		Path:        dbPath,
		BusyTimeout: busyTimeout,
		Logger:      log.New(log.Writer(), "db: ", log.LstdFlags),
	})
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	i18nManager, err := i18n.NewManager(defaultLanguage, i18n.EmbeddedLocales())
	if err != nil {
		log.Fatalf("i18n init failed: %v", err)
	}

	handler, err := api.NewHandler(database, i18nManager, api.Options{
		Location: location,
		Ads:      adsConfig,
	})
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Ciclo",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	repositories := db.NewRepositories(database)
	cycles := services.NewCycleService(
		services.NewPeriodService(repositories.Periods),
		repositories.Profile,
		repositories.DailyLogs,
	)
	notifications := services.NewNotificationService(
		cycles,
		repositories.Reminders,
		repositories.Settings,
		i18nManager,
		resolveNotifier(),
		services.NotificationConfig{
			Interval:           notifyInterval,
			PeriodReminderDays: reminderDays,
			Location:           location,
		},
	)
	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	notifications.Start(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Ciclo listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func runCommand(name string, args []string, dbPath string, location *time.Location) error {
	switch name {
	case "reset-pin":
		flags := flag.NewFlagSet(name, flag.ContinueOnError)
		disable := flags.Bool("disable", false, "turn the pin lock off")
		generate := flags.Bool("generate", false, "set and print a random temporary pin")
		if err := flags.Parse(args); err != nil {
			return err
		}
		return cli.RunResetPINCommand(dbPath, cli.ResetPINOptions{Disable: *disable, Generate: *generate})
	case "export":
		if len(args) != 1 {
			return errors.New("usage: ciclo export <file|->")
		}
		return cli.RunExportCommand(dbPath, args[0], time.Now().In(location))
	case "import":
		if len(args) != 1 {
			return errors.New("usage: ciclo import <file>")
		}
		return cli.RunImportCommand(dbPath, args[0], cycle.Today(location))
	default:
		return fmt.Errorf("unknown command %q (expected reset-pin, export or import)", name)
	}
}

func resolvePort() (string, error) {
	raw := strings.TrimSpace(getEnv("PORT", "8080"))
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("PORT must be between 1 and 65535, got %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveNotifyInterval() (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv("NOTIFY_INTERVAL"))
	if raw == "" {
		return services.DefaultNotifyInterval, nil
	}
	interval, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("NOTIFY_INTERVAL: %w", err)
	}
	if interval < minNotifyInterval {
		return 0, fmt.Errorf("NOTIFY_INTERVAL must be at least %s, got %s", minNotifyInterval, interval)
	}
	return interval, nil
}

func resolveBusyTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv("DB_BUSY_TIMEOUT"))
	if raw == "" {
		return db.DefaultBusyTimeout, nil
	}
	timeout, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("DB_BUSY_TIMEOUT: %w", err)
	}
	if timeout < time.Millisecond {
		return 0, fmt.Errorf("DB_BUSY_TIMEOUT must be at least 1ms, got %s", timeout)
	}
	return timeout, nil
}

func resolvePeriodReminderDays() (int, error) {
	raw := strings.TrimSpace(os.Getenv("PERIOD_REMINDER_DAYS"))
	if raw == "" {
		return services.DefaultPeriodReminderDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		return 0, fmt.Errorf("PERIOD_REMINDER_DAYS must be a non-negative number, got %q", raw)
	}
	return days, nil
}

func resolveAdsConfig() (ads.Config, error) {
	config := ads.DefaultConfig()
	if raw := strings.TrimSpace(os.Getenv("ADS_ENABLED")); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return ads.Config{}, fmt.Errorf("ADS_ENABLED: %w", err)
		}
		config.Enabled = enabled
	}
	if raw := strings.TrimSpace(os.Getenv("ADS_FREQUENCY")); raw != "" {
		frequency, err := ads.ParseFrequency(raw)
		if err != nil {
			return ads.Config{}, fmt.Errorf("ADS_FREQUENCY: %w", err)
		}
		config.Frequency = frequency
	}
	return config, nil
}

// resolveNotifier delivers to Telegram when both credentials are set and to the
// process log otherwise.
func resolveNotifier() services.Notifier {
	token := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	chatID := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID"))
	if token == "" || chatID == "" {
		return services.NewLogNotifier(nil)
	}
	return services.NewTelegramNotifier(token, chatID)
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
