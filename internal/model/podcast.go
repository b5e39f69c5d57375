package model

import "time"

// Podcast is a show in the catalog. Title and category together are unique.
type Podcast struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null;uniqueIndex:idx_podcast_title_category"`
	Category  string    `json:"category" gorm:"size:255;not null;uniqueIndex:idx_podcast_title_category"`
	Rating    float64   `json:"rating" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Episodes []Episode `json:"episodes" gorm:"foreignKey:PodcastID;constraint:OnDelete:CASCADE"`
}

// Episode belongs to exactly one podcast.
type Episode struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Category  string    `json:"category" gorm:"size:255;not null"`
	PodcastID uint      `json:"podcastId" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
