package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Listing statuses.
const (
	StatusActive     = "Active"
	StatusInactive   = "Inactive"
	StatusComingSoon = "Coming Soon"
	StatusSoldOut    = "Sold Out"
	StatusPending    = "Pending"
)

// Listing types.
const (
	ListingTypeFeatured = "Featured"
	ListingTypeLead     = "Lead"
	ListingTypeEOI      = "EOI"
)

// ValidStatus reports whether s is a known listing status.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusComingSoon, StatusSoldOut, StatusPending:
		return true
	}
	return false
}

// ValidListingType reports whether t is a known listing type.
func ValidListingType(t string) bool {
	switch t {
	case ListingTypeFeatured, ListingTypeLead, ListingTypeEOI:
		return true
	}
	return false
}

// Project is a development listing (a whole building or community).
type Project struct {
	BaseModel
	Title        string         `json:"title"`
	Location     Location       `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	PriceRange   string         `json:"price_range"`
	About        string         `json:"about"`
	Description  string         `json:"description"`
	ProjectSize  string         `json:"project_size"`
	LaunchDate   string         `json:"launch_date"`
	Type         string         `json:"type"`
	ForSale      bool           `json:"for_sale"`
	ForRent      bool           `json:"for_rent"`
	TopAmenities pq.StringArray `gorm:"type:text[]" json:"top_amenities"`
	Tags         pq.StringArray `gorm:"type:text[]" json:"tags"`
	Gallery      pq.StringArray `gorm:"type:text[]" json:"gallery"`
	GalleryURLs  pq.StringArray `gorm:"type:text[]" json:"gallery_urls"`
	ImageName    string         `json:"image_name"`
	ImageURL     string         `json:"image_url"`
	BrochureURL  string         `json:"brochure_url"`
	Status       string         `json:"status"`
	CreatedBy    *uuid.UUID     `gorm:"type:uuid;index" json:"created_by"`
}
