package models

import "time"

// LeaderboardEntry is a fully derived ranking row.
type LeaderboardEntry struct {
	TeamID             string `json:"teamId"`
	Title              string `json:"title"`
	TotalPoints        int    `json:"totalPoints"`
	CompletedTaskCount int    `json:"completedTaskCount"`
	Rank               int    `json:"rank"`
}

// ProblemStatement is a challenge a team can pick at registration.
type ProblemStatement struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Domain      string `json:"domain"`
}

// ProblemStatementInput is used for creation, edits and bulk import rows.
type ProblemStatementInput struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Domain      string `json:"domain"`
}

// Announcement is a message broadcast by admins to all teams.
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// AnnouncementInput is the body of an announcement create or update.
type AnnouncementInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// GalleryImage is an uploaded team photo.
type GalleryImage struct {
	ID         string    `json:"id"`
	TeamID     string    `json:"teamId"`
	URL        string    `json:"url"`
	Caption    string    `json:"caption,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// ImageUpload is a single file handed to the gallery upload endpoint.
type ImageUpload struct {
	Filename    string
	ContentType string
	Caption     string
	Data        []byte
}
