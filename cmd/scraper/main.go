// Package main provides the scraper command-line tool that collects bank
// app reviews from the review source.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/config"
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/logger"
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/scraper"
)

const defaultConfigPath = "configs/pipeline.yaml"

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	flag.Parse()

	cfg := mustLoadConfig(*configFile)
	logg := logger.NewLogger(cfg.Pipeline.Logging.Level)

	logg.Info("🚀 Starting review scraper")
	logg.Info(fmt.Sprintf("⚙️  %s", cfg))

	client := scraper.NewClient(cfg, logg)

	raw, err := client.ScrapeAllBanks()
	if err != nil {
		logg.Error(fmt.Sprintf("❌ Scraping failed: %v", err))
		os.Exit(1)
	}

	samples := cfg.Pipeline.Logging.SampleReviews
	if samples > 0 {
		client.DisplaySamples(raw, samples)
	}

	fmt.Println("\n✅ Scraping completed successfully!")
}

func mustLoadConfig(path string) *config.Config {
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err != nil {
			log.Fatalf("❌ Please provide -config file or place %s in working directory", defaultConfigPath)
		}

		path = defaultConfigPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	return cfg
}
