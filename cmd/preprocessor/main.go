// Package main provides the preprocessor command-line tool that cleans
// raw review data into an analysis-ready table.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/config"
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/logger"
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/preprocess"
)

const defaultConfigPath = "configs/pipeline.yaml"

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	inputPath := flag.String("input", "", "Raw reviews CSV path (overrides config)")
	outputPath := flag.String("output", "", "Processed reviews CSV path (overrides config)")
	flag.Parse()

	cfg := mustLoadConfig(*configFile)

	input := cfg.RawReviewsPath()
	if *inputPath != "" {
		input = *inputPath
	}

	output := cfg.ProcessedReviewsPath()
	if *outputPath != "" {
		output = *outputPath
	}

	logg := logger.NewLogger(cfg.Pipeline.Logging.Level)

	logg.Info("🚀 Starting data preprocessing")
	logg.Info(fmt.Sprintf("📂 Input: %s", input))
	logg.Info(fmt.Sprintf("🎯 Output: %s", output))

	pipeline := preprocess.NewWithPaths(cfg, input, output, logg)

	if _, _, err := pipeline.Run(); err != nil {
		logg.Error(fmt.Sprintf("❌ Preprocessing failed: %v", err))
		os.Exit(1)
	}

	fmt.Println("\n✅ Preprocessing completed successfully!")
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
