package scraper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/config"
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/dataset"
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/logger"
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/models"
	"github.com/Avicci-b/Analytics-for-fintech-apps/pkg/coerce"
	"github.com/Avicci-b/Analytics-for-fintech-apps/pkg/utils"
)

// ErrNoReviews is returned when no bank yields any reviews.
var ErrNoReviews = errors.New("no reviews were collected")

// rawTimestampLayout preserves time-of-day in the raw CSV; the pipeline
// truncates to calendar dates later.
const rawTimestampLayout = "2006-01-02 15:04:05"

// rawColumns is the schema of the raw reviews CSV.
var rawColumns = []string{
	"review_id", "review_text", "rating", "review_date",
	"bank_code", "bank_name", "source",
	"user_name", "thumbs_up", "reply_content",
}

// appInfoColumns is the schema of the app metadata CSV.
var appInfoColumns = []string{
	"app_id", "title", "score", "ratings", "reviews", "installs",
	"bank_code", "bank_name",
}

// Client orchestrates review collection across all configured banks.
type Client struct {
	source ReviewSource
	cfg    *config.Config
	log    *logger.Logger
}

// NewClient creates a collection client backed by the HTTP review source.
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return NewClientWithSource(NewPlayStoreSource(cfg), cfg, log)
}

// NewClientWithSource creates a collection client with an injected source.
func NewClientWithSource(source ReviewSource, cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		source: source,
		cfg:    cfg,
		log:    log,
	}
}

// ScrapeAllBanks fetches app metadata and reviews for every enabled bank,
// persists both CSVs and returns the combined raw review table. A bank
// that fails to fetch is logged and skipped, never fatal; only an empty
// overall result or a persistence failure aborts the run.
func (c *Client) ScrapeAllBanks() (*dataset.Dataset, error) {
	banks := c.cfg.EnabledBanks()

	c.log.Info("[1/2] Fetching app information...")

	var infoRows []dataset.Row

	for _, bank := range banks {
		c.log.Info(fmt.Sprintf("%s: %s (app id %s)", bank.Code, bank.Name, bank.AppID))

		info, err := c.source.AppInfo(bank.AppID)
		if err != nil {
			c.log.Warn(fmt.Sprintf("⚠️  Failed to fetch app info for %s: %v", bank.Code, err))

			continue
		}

		info.BankCode = bank.Code
		info.BankName = bank.Name
		infoRows = append(infoRows, appInfoRow(info))

		c.log.Info(fmt.Sprintf("  Current rating: %.1f (%d ratings, %d reviews)",
			info.Score, info.Ratings, info.Reviews))
	}

	if len(infoRows) > 0 {
		infoTable := dataset.FromRows(appInfoColumns, infoRows)

		if err := infoTable.WriteCSV(c.cfg.AppInfoPath()); err != nil {
			return nil, fmt.Errorf("failed to save app info: %w", err)
		}

		c.log.Info(fmt.Sprintf("App information saved to %s", c.cfg.AppInfoPath()))
	}

	c.log.Info("[2/2] Scraping reviews...")

	raw := dataset.New(rawColumns)
	target := c.cfg.Pipeline.Scraping.ReviewsPerBank

	for i, bank := range banks {
		if i > 0 {
			if sleep := c.cfg.SleepBetweenBanks(); sleep > 0 {
				time.Sleep(sleep)
			}
		}

		reviews, err := c.source.Reviews(bank.AppID, target)
		if err != nil {
			c.log.Warn(fmt.Sprintf("⚠️  Failed to scrape reviews for %s: %v", bank.Name, err))

			continue
		}

		if len(reviews) == 0 {
			c.log.Warn(fmt.Sprintf("⚠️  No reviews collected for %s", bank.Name))

			continue
		}

		for _, review := range reviews {
			raw.Append(reviewRow(review, bank))
		}

		c.log.Info(fmt.Sprintf("Collected %d reviews for %s", len(reviews), bank.Name))
	}

	if raw.Len() == 0 {
		return nil, ErrNoReviews
	}

	if err := raw.WriteCSV(c.cfg.RawReviewsPath()); err != nil {
		return nil, fmt.Errorf("failed to save raw reviews: %w", err)
	}

	c.log.Info(fmt.Sprintf("✅ Collected %d reviews total", raw.Len()))
	c.log.Info(fmt.Sprintf("Data saved to: %s", c.cfg.RawReviewsPath()))

	return raw, nil
}

// reviewRow shapes one collected review into a raw table row. Records the
// source delivered without an identifier get a fresh one.
func reviewRow(review models.RawReview, bank config.BankConfig) dataset.Row {
	id := review.ReviewID
	if id == "" {
		id = uuid.NewString()
	}

	return dataset.Row{
		"review_id":     id,
		"review_text":   review.ReviewText,
		"rating":        review.Rating,
		"review_date":   review.ReviewDate.Format(rawTimestampLayout),
		"bank_code":     bank.Code,
		"bank_name":     bank.Name,
		"source":        SourceGooglePlay,
		"user_name":     review.UserName,
		"thumbs_up":     review.ThumbsUp,
		"reply_content": review.ReplyContent,
	}
}

func appInfoRow(info *models.AppInfo) dataset.Row {
	return dataset.Row{
		"app_id":    info.AppID,
		"title":     info.Title,
		"score":     info.Score,
		"ratings":   info.Ratings,
		"reviews":   info.Reviews,
		"installs":  info.Installs,
		"bank_code": info.BankCode,
		"bank_name": info.BankName,
	}
}

// DisplaySamples prints up to n reviews per bank to verify data quality.
func (c *Client) DisplaySamples(raw *dataset.Dataset, n int) {
	helper := utils.NewStringHelper()

	fmt.Println("\nSample Reviews")
	fmt.Println("------------------------------------------------------------")

	for _, bank := range c.cfg.EnabledBanks() {
		shown := 0

		for _, row := range raw.Rows() {
			if shown >= n {
				break
			}

			code, ok := row["bank_code"].(string)
			if !ok || code != bank.Code {
				continue
			}

			if shown == 0 {
				fmt.Printf("\n%s:\n", bank.Name)
			}

			rating := coerce.ToInt(row["rating"]).Value
			if rating < 0 {
				rating = 0
			}

			text := coerce.ToString(row["review_text"]).Value

			fmt.Printf("\nRating: %s\n", strings.Repeat("⭐", rating))
			fmt.Printf("Review: %s\n", helper.TruncateString(text, 200))
			fmt.Printf("Date: %s\n", coerce.ToString(row["review_date"]).Value)

			shown++
		}
	}
}
