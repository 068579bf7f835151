package preprocess

import (
	"testing"

	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/config"
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/dataset"
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/logger"
)

// testConfig returns the canonical three-bank configuration used across
// the pipeline tests.
func testConfig() *config.Config {
	return &config.Config{
		Pipeline: config.PipelineConfig{
			Banks: []config.BankConfig{
				{Code: "CBE", Name: "Commercial Bank of Ethiopia", AppID: "cbe.app", Enabled: true},
				{Code: "BOA", Name: "Bank of Abyssinia", AppID: "boa.app", Enabled: true},
				{Code: "Dashen", Name: "Dashen Bank", AppID: "dashen.app", Enabled: true},
			},
			Scraping: config.ScrapingConfig{Lang: "en", Country: "et", ReviewsPerBank: 10},
			Retry: config.RetryPolicy{
				MaxAttempts: 1, BackoffMultiplier: 1.0, TimeoutSec: 1,
			},
			Paths:   config.PathsConfig{DataDir: "data"},
			Logging: config.LoggingConfig{Level: "error"},
		},
	}
}

// newTestPipeline wires a pipeline around an in-memory table so stage
// behavior can be exercised without touching disk.
func newTestPipeline(t *testing.T, ds *dataset.Dataset) *Pipeline {
	t.Helper()

	return &Pipeline{
		cfg: testConfig(),
		log: logger.NewLogger("error"),
		ds:  ds,
	}
}
