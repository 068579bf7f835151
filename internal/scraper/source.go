// Package scraper collects bank app reviews from the review source and
// persists them as the raw CSV consumed by the preprocessing pipeline.
package scraper

import (
	"github.com/Avicci-b/Analytics-for-fintech-apps/internal/models"
)

// SourceGooglePlay is the source label attached to collected reviews.
const SourceGooglePlay = "Google Play"

// ReviewSource yields raw review records for an application identifier.
// The pipeline imposes no requirements on how the records were produced.
type ReviewSource interface {
	// AppInfo fetches store metadata for the app.
	AppInfo(appID string) (*models.AppInfo, error)

	// Reviews fetches up to count reviews for the app, newest first.
	Reviews(appID string, count int) ([]models.RawReview, error)
}
