package preprocess

// Column names of the review table.
const (
	ColReviewID     = "review_id"
	ColReviewText   = "review_text"
	ColRating       = "rating"
	ColReviewDate   = "review_date"
	ColBankCode     = "bank_code"
	ColBankName     = "bank_name"
	ColSource       = "source"
	ColUserName     = "user_name"
	ColThumbsUp     = "thumbs_up"
	ColReplyContent = "reply_content"
	ColTextLength   = "text_length"
	ColReviewYear   = "review_year"
	ColReviewMonth  = "review_month"
)

// criticalColumns disqualify a row when null. Only the subset actually
// present in the input is enforced.
var criticalColumns = []string{ColReviewText, ColRating, ColBankCode}

// requiredColumns is the fixed leading portion of the output schema, in
// order. Columns missing by the final stage are synthesized with nulls.
var requiredColumns = []string{
	ColReviewID,
	ColReviewText,
	ColRating,
	ColReviewDate,
	ColBankCode,
	ColBankName,
	ColSource,
}

// optionalColumns are appended to the output schema only when present.
var optionalColumns = []string{
	ColUserName,
	ColThumbsUp,
	ColTextLength,
	ColReviewYear,
	ColReviewMonth,
}
