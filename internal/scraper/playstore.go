package scraper

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/config"
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/models"
	"github.com/Avicci-b/Analytics-for-fintech-apps/pkg/coerce"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// maxResponseBytes caps review payload reads.
const maxResponseBytes = 8 << 20

// PlayStoreSource fetches reviews and app metadata over HTTP with
// config-driven retry logic.
type PlayStoreSource struct {
	client      *http.Client
	retryPolicy *config.RetryPolicy
	baseURL     string
	lang        string
	country     string
}

// NewPlayStoreSource creates a review source from the pipeline config.
func NewPlayStoreSource(cfg *config.Config) *PlayStoreSource {
	retry := cfg.Pipeline.Retry

	return &PlayStoreSource{
		client: &http.Client{
			Timeout: retry.GetTimeout(),
		},
		retryPolicy: &retry,
		baseURL:     cfg.Pipeline.Scraping.BaseURL,
		lang:        cfg.Pipeline.Scraping.Lang,
		country:     cfg.Pipeline.Scraping.Country,
	}
}

// appPayload mirrors the store's app metadata response.
type appPayload struct {
	AppID    string  `json:"appId"`
	Title    string  `json:"title"`
	Installs string  `json:"installs"`
	Score    float64 `json:"score"`
	Ratings  int64   `json:"ratings"`
	Reviews  int64   `json:"reviews"`
}

// reviewPayload mirrors one review record in the store's response.
type reviewPayload struct {
	ReviewID      string `json:"reviewId"`
	Content       string `json:"content"`
	At            string `json:"at"`
	UserName      string `json:"userName"`
	ReplyContent  string `json:"replyContent"`
	Score         int    `json:"score"`
	ThumbsUpCount int    `json:"thumbsUpCount"`
}

type reviewsResponse struct {
	Reviews []reviewPayload `json:"reviews"`
}

// AppInfo fetches store metadata for the app.
func (s *PlayStoreSource) AppInfo(appID string) (*models.AppInfo, error) {
	endpoint := fmt.Sprintf("%s/apps/%s?%s",
		s.baseURL, url.PathEscape(appID), s.localeQuery().Encode())

	var payload appPayload
	if err := s.fetchJSON(endpoint, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch app info for %s: %w", appID, err)
	}

	return &models.AppInfo{
		AppID:    appID,
		Title:    payload.Title,
		Installs: payload.Installs,
		Score:    payload.Score,
		Ratings:  payload.Ratings,
		Reviews:  payload.Reviews,
	}, nil
}

// Reviews fetches up to count reviews for the app, newest first.
func (s *PlayStoreSource) Reviews(appID string, count int) ([]models.RawReview, error) {
	query := s.localeQuery()
	query.Set("count", strconv.Itoa(count))
	query.Set("sort", "newest")

	endpoint := fmt.Sprintf("%s/apps/%s/reviews?%s",
		s.baseURL, url.PathEscape(appID), query.Encode())

	var payload reviewsResponse
	if err := s.fetchJSON(endpoint, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch reviews for %s: %w", appID, err)
	}

	reviews := make([]models.RawReview, 0, len(payload.Reviews))

	for _, r := range payload.Reviews {
		at, ok := coerce.ToDate(r.At)
		if !ok {
			// Source records without a usable timestamp get the
			// collection time; the pipeline decides what to keep.
			at = time.Now()
		}

		reviews = append(reviews, models.RawReview{
			ReviewID:     r.ReviewID,
			ReviewText:   r.Content,
			Rating:       r.Score,
			ReviewDate:   at,
			UserName:     r.UserName,
			ThumbsUp:     r.ThumbsUpCount,
			ReplyContent: r.ReplyContent,
		})
	}

	return reviews, nil
}

func (s *PlayStoreSource) localeQuery() url.Values {
	query := url.Values{}
	query.Set("lang", s.lang)
	query.Set("country", s.country)

	return query
}

// fetchJSON performs a GET with retry/backoff and decodes the JSON body.
func (s *PlayStoreSource) fetchJSON(endpoint string, out any) error {
	var lastErr error

	for attempt := 1; attempt <= s.retryPolicy.MaxAttempts; attempt++ {
		body, statusCode, err := s.doRequest(endpoint)
		if err == nil && statusCode == http.StatusOK {
			if unmarshalErr := json.Unmarshal(body, out); unmarshalErr != nil {
				return fmt.Errorf("failed to decode response: %w", unmarshalErr)
			}

			return nil
		}

		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w",
				attempt, s.retryPolicy.MaxAttempts, err)
		} else {
			lastErr = fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, statusCode)

			if !isRetryableStatus(statusCode) {
				return lastErr
			}
		}

		if attempt < s.retryPolicy.MaxAttempts {
			if delay := s.retryPolicy.GetRetryDelay(attempt + 1); delay > 0 {
				time.Sleep(delay)
			}
		}
	}

	return lastErr
}

// doRequest performs a single GET attempt.
func (s *PlayStoreSource) doRequest(endpoint string) (body []byte, statusCode int, err error) {
	req, err := http.NewRequest(http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "fintech-analytics-scraper/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, err
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	reader := io.LimitReader(resp.Body, maxResponseBytes)

	body, err = io.ReadAll(reader)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}

// isRetryableStatus determines if we should retry based on HTTP status code.
func isRetryableStatus(statusCode int) bool {
	// Retry on temporary failures
	switch statusCode {
	case http.StatusServiceUnavailable: // 503
		return true
	case http.StatusGatewayTimeout: // 504
		return true
	case http.StatusTooManyRequests: // 429
		return true
	case http.StatusRequestTimeout: // 408
		return true
	}

	return false
}
