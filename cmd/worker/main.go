// Package main provides the unified worker command that collects reviews
// and runs the cleaning pipeline end to end.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/config"
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/logger"
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/preprocess"
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/scraper"
)

const defaultConfigPath = "configs/pipeline.yaml"

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	skipScrape := flag.Bool("skip-scrape", false, "Skip collection and preprocess the existing raw CSV")
	flag.Parse()

	cfg := mustLoadConfig(*configFile)
	logg := logger.NewLogger(cfg.Pipeline.Logging.Level)

	logg.Info("🚀 Starting Review Analytics Worker Pipeline")
	logg.Info(fmt.Sprintf("⚙️  %s", cfg))

	startTime := time.Now()
	collected := 0

	// Phase 1: Collection
	if *skipScrape {
		logg.Info("Phase 1: Collection skipped (-skip-scrape)")
	} else {
		logg.Info("Phase 1: Collection (Scraping)...")

		client := scraper.NewClient(cfg, logg)

		raw, err := client.ScrapeAllBanks()
		if err != nil {
			logg.Error(fmt.Sprintf("❌ Collection failed: %v", err))
			os.Exit(1)
		}

		collected = raw.Len()
		logg.Info(fmt.Sprintf("✅ Collected %d raw reviews in %v", collected, time.Since(startTime)))
	}

	// Phase 2: Processing
	logg.Info("Phase 2: Processing (Cleaning & Normalization)...")

	processStart := time.Now()
	pipeline := preprocess.New(cfg, logg)

	_, stats, err := pipeline.Run()
	if err != nil {
		logg.Error(fmt.Sprintf("❌ Preprocessing failed: %v", err))
		os.Exit(1)
	}

	logg.Info(fmt.Sprintf("✅ Cleaned %d reviews in %v", stats.FinalCount, time.Since(processStart)))

	// Final Report
	logg.Info("✨ Pipeline Complete!")
	fmt.Println("\n------------------------------------------------")
	fmt.Printf("📊 Summary Report\n")
	fmt.Println("------------------------------------------------")

	if !*skipScrape {
		fmt.Printf("Reviews Collected: %d\n", collected)
	}

	fmt.Printf("Raw Records: %d\n", stats.OriginalCount)
	fmt.Printf("Clean Records: %d\n", stats.FinalCount)
	fmt.Printf("Retention Rate: %.2f%%\n", stats.RetentionRate()*100)
	fmt.Printf("Total Duration: %v\n", time.Since(startTime))
	fmt.Println("------------------------------------------------")
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
