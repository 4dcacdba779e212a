package main

import (
	"flag"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/app"
	"github.com/vladislavdragonenkov/storefront/internal/ui"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

// setupLogger настраивает формат и уровень логирования приложения.
func setupLogger(verbose bool) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.WarnLevel)
	if verbose {
		log.SetLevel(log.InfoLevel)
	}
}

// readConfig формирует конфигурацию, позволяя переопределить пути файлов
// данных через флаги и переменные окружения.
func readConfig() app.Config {
	cfg := app.DefaultConfig()
	if v := os.Getenv("STOREFRONT_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("STOREFRONT_PRODUCTS_FILE"); v != "" {
		cfg.ProductsFile = v
	}
	if v := os.Getenv("STOREFRONT_CUSTOMERS_FILE"); v != "" {
		cfg.CustomersFile = v
	}
	if v := os.Getenv("STOREFRONT_ORDERS_FILE"); v != "" {
		cfg.OrdersFile = v
	}
	return cfg
}

func main() {
	var (
		dataDir     string
		verbose     bool
		showVersion bool
	)
	flag.StringVar(&dataDir, "data-dir", "", "directory with data files (fallback: STOREFRONT_DATA_DIR)")
	flag.BoolVar(&verbose, "verbose", false, "enable info-level logging")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	setupLogger(verbose)

	if showVersion {
		os.Stdout.WriteString(version.String() + "\n")
		return
	}

	cfg := readConfig()
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	log.WithField("data_dir", cfg.DataDir).Info("запускаем storefront")

	console := ui.NewConsole(os.Stdin, os.Stdout)
	if err := app.Run(cfg, console, log.WithField("component", "app")); err != nil {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("storefront остановлен")
}
