package domain

import "time"

// Banner image fit modes mirror CSS object-fit values used by the client.
var BannerImageFits = []string{"cover", "contain", "fill", "scale-down"}

// ValidImageFit reports whether fit is a known banner image fit mode.
func ValidImageFit(fit string) bool {
	for _, f := range BannerImageFits {
		if f == fit {
			return true
		}
	}
	return false
}

// ImagePosition is the focal point of the banner image in percent (0-100).
type ImagePosition struct {
	X float64 `json:"x" dynamodbav:"x"`
	Y float64 `json:"y" dynamodbav:"y"`
}

// Banner is the hero image shown on the public landing page. At most one
// banner is active at a time.
type Banner struct {
	BannerID      string        `json:"id" dynamodbav:"banner_id"`
	Image         string        `json:"image" dynamodbav:"image"`
	ImageKey      string        `json:"imageKey,omitempty" dynamodbav:"image_key"`
	Caption       string        `json:"caption" dynamodbav:"caption"`
	Location      string        `json:"location" dynamodbav:"location"`
	ImageFit      string        `json:"imageFit" dynamodbav:"image_fit"`
	ImagePosition ImagePosition `json:"imagePosition" dynamodbav:"image_position"`
	Active        bool          `json:"isActive" dynamodbav:"active"`
	CreatedAt     time.Time     `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" dynamodbav:"updated_at"`
}

// BannerInput carries the mutable banner fields; zero values fall back to
// the defaults the original site shipped with.
type BannerInput struct {
	Caption       string
	Location      string
	ImageFit      string
	ImagePosition *ImagePosition
}
