package domain

import "time"

// Logo is the agency logo with its title lines, shown in the site header.
type Logo struct {
	LogoID    string    `json:"id" dynamodbav:"logo_id"`
	Image     string    `json:"image" dynamodbav:"image"`
	ImageKey  string    `json:"imageKey,omitempty" dynamodbav:"image_key"`
	Title     string    `json:"title" dynamodbav:"title"`
	Subtitle  string    `json:"subtitle" dynamodbav:"subtitle"`
	Active    bool      `json:"isActive" dynamodbav:"active"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

type LogoInput struct {
	Title    string
	Subtitle string
}
