package scraper

import (
	"errors"
	"testing"
	"time"

	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/config"
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/dataset"
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/logger"
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/models"
)

// stubSource serves canned responses per app ID.
type stubSource struct {
	infos   map[string]*models.AppInfo
	reviews map[string][]models.RawReview
	errs    map[string]error
}

func (s *stubSource) AppInfo(appID string) (*models.AppInfo, error) {
	if err := s.errs[appID]; err != nil {
		return nil, err
	}

	info, ok := s.infos[appID]
	if !ok {
		return &models.AppInfo{AppID: appID}, nil
	}

	return info, nil
}

func (s *stubSource) Reviews(appID string, count int) ([]models.RawReview, error) {
	if err := s.errs[appID]; err != nil {
		return nil, err
	}

	return s.reviews[appID], nil
}

func clientConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Pipeline: config.PipelineConfig{
			Banks: []config.BankConfig{
				{Code: "CBE", Name: "Commercial Bank of Ethiopia", AppID: "cbe.app", Enabled: true},
				{Code: "BOA", Name: "Bank of Abyssinia", AppID: "boa.app", Enabled: true},
				{Code: "Dashen", Name: "Dashen Bank", AppID: "dashen.app", Enabled: false},
			},
			Scraping: config.ScrapingConfig{ReviewsPerBank: 10},
			Retry:    config.RetryPolicy{MaxAttempts: 1, TimeoutSec: 1, BackoffMultiplier: 1},
			Paths:    config.PathsConfig{DataDir: t.TempDir()},
			Logging:  config.LoggingConfig{Level: "error"},
		},
	}
}

func sampleReview(id, text string) models.RawReview {
	return models.RawReview{
		ReviewID:   id,
		ReviewText: text,
		Rating:     4,
		ReviewDate: time.Date(2024, 5, 1, 13, 45, 2, 0, time.UTC),
		UserName:   "Alem",
	}
}

func TestScrapeAllBanks(t *testing.T) {
	cfg := clientConfig(t)

	source := &stubSource{
		infos: map[string]*models.AppInfo{
			"cbe.app": {AppID: "cbe.app", Title: "CBE Mobile", Score: 4.1},
			"boa.app": {AppID: "boa.app", Title: "BOA Mobile", Score: 3.8},
		},
		reviews: map[string][]models.RawReview{
			"cbe.app": {sampleReview("a", "Great"), sampleReview("b", "Good")},
			"boa.app": {sampleReview("c", "Slow")},
		},
	}

	client := NewClientWithSource(source, cfg, logger.NewLogger("error"))

	raw, err := client.ScrapeAllBanks()
	if err != nil {
		t.Fatalf("ScrapeAllBanks failed: %v", err)
	}

	// Dashen is disabled, so only CBE and BOA contribute
	if raw.Len() != 3 {
		t.Fatalf("Len = %d, want 3", raw.Len())
	}

	row := raw.Rows()[0]
	if row["bank_code"] != "CBE" || row["bank_name"] != "Commercial Bank of Ethiopia" {
		t.Errorf("bank fields = %v / %v", row["bank_code"], row["bank_name"])
	}

	if row["source"] != SourceGooglePlay {
		t.Errorf("source = %v, want %v", row["source"], SourceGooglePlay)
	}

	if row["review_date"] != "2024-05-01 13:45:02" {
		t.Errorf("review_date = %v", row["review_date"])
	}

	// Both CSVs are persisted
	saved, err := dataset.ReadCSV(cfg.RawReviewsPath())
	if err != nil {
		t.Fatalf("Failed to read raw CSV: %v", err)
	}

	if saved.Len() != 3 {
		t.Errorf("saved Len = %d, want 3", saved.Len())
	}

	infos, err := dataset.ReadCSV(cfg.AppInfoPath())
	if err != nil {
		t.Fatalf("Failed to read app info CSV: %v", err)
	}

	if infos.Len() != 2 {
		t.Errorf("app info Len = %d, want 2", infos.Len())
	}
}

func TestScrapeAllBanks_AssignsMissingIDs(t *testing.T) {
	cfg := clientConfig(t)

	source := &stubSource{
		reviews: map[string][]models.RawReview{
			"cbe.app": {sampleReview("", "No id")},
		},
	}

	client := NewClientWithSource(source, cfg, logger.NewLogger("error"))

	raw, err := client.ScrapeAllBanks()
	if err != nil {
		t.Fatalf("ScrapeAllBanks failed: %v", err)
	}

	id, ok := raw.Rows()[0]["review_id"].(string)
	if !ok || id == "" {
		t.Errorf("review_id = %v, want generated id", raw.Rows()[0]["review_id"])
	}
}

func TestScrapeAllBanks_SkipsFailingBank(t *testing.T) {
	cfg := clientConfig(t)

	source := &stubSource{
		reviews: map[string][]models.RawReview{
			"boa.app": {sampleReview("a", "Fine")},
		},
		errs: map[string]error{
			"cbe.app": errors.New("boom"),
		},
	}

	client := NewClientWithSource(source, cfg, logger.NewLogger("error"))

	raw, err := client.ScrapeAllBanks()
	if err != nil {
		t.Fatalf("ScrapeAllBanks failed: %v", err)
	}

	if raw.Len() != 1 {
		t.Fatalf("Len = %d, want 1", raw.Len())
	}

	if raw.Rows()[0]["bank_code"] != "BOA" {
		t.Errorf("bank_code = %v, want BOA", raw.Rows()[0]["bank_code"])
	}
}

func TestScrapeAllBanks_NoReviewsAnywhere(t *testing.T) {
	cfg := clientConfig(t)

	source := &stubSource{}

	client := NewClientWithSource(source, cfg, logger.NewLogger("error"))

	if _, err := client.ScrapeAllBanks(); !errors.Is(err, ErrNoReviews) {
		t.Fatalf("err = %v, want ErrNoReviews", err)
	}
}
