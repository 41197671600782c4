package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Property is an individual unit listing (a flat, plot or house).
type Property struct {
	BaseModel
	Name          string         `json:"name"`
	Location      Location       `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Price         string         `json:"price"`
	Size          string         `json:"size"`
	Status        string         `json:"status"`
	Configuration string         `json:"configuration"`
	VideoLink     string         `json:"video_link"`
	FeaturedTag   string         `json:"featured_tag"`
	ForSale       bool           `json:"for_sale"`
	ForRent       bool           `json:"for_rent"`
	ImageURL      string         `json:"image_url"`
	ImageName     string         `json:"image_name"`
	GalleryURLs   pq.StringArray `gorm:"type:text[]" json:"gallery_urls"`
	BrochureURL   string         `json:"brochure_url"`
	Type          string         `json:"type"`
	CreatedBy     *uuid.UUID     `gorm:"type:uuid;index" json:"created_by"`
}
