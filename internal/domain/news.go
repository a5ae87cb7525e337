package domain

import (
	"regexp"
	"time"
)

// News sort orders accepted by the listing endpoint.
const (
	NewsSortNewest = "newest"
	NewsSortOldest = "oldest"
	NewsSortViews  = "views"
	NewsSortTitle  = "title"
)

// News is a published article with its hero image.
type News struct {
	NewsID     string    `json:"id" dynamodbav:"news_id"`
	Title      string    `json:"title" dynamodbav:"title"`
	Image      string    `json:"image" dynamodbav:"image"`
	ImageKey   string    `json:"imageKey,omitempty" dynamodbav:"image_key"`
	Content    string    `json:"content" dynamodbav:"content"`
	CreatedBy  string    `json:"createdBy,omitempty" dynamodbav:"created_by"`
	AuthorName string    `json:"authorName" dynamodbav:"author_name"`
	Views      int       `json:"views" dynamodbav:"views"`
	Published  bool      `json:"isPublished" dynamodbav:"published"`
	Excerpt    string    `json:"excerpt" dynamodbav:"-"`
	CreatedAt  time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// MakeExcerpt strips markup from content and truncates it for list views.
func MakeExcerpt(content string) string {
	plain := tagPattern.ReplaceAllString(content, "")
	runes := []rune(plain)
	if len(runes) <= 150 {
		return plain
	}
	return string(runes[:150]) + "..."
}

// NewsQuery shapes the admin/public news listing.
type NewsQuery struct {
	Page               int
	Limit              int
	Search             string
	Sort               string
	IncludeUnpublished bool
}

// Pagination describes a page of results.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}
