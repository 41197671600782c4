package handlers

import (
	"errors"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/damrideal/internal/middleware"
	"github.com/example/damrideal/internal/models"
	"github.com/example/damrideal/internal/utils"
)

// PropertyHandler manages property listings.
type PropertyHandler struct {
	db *gorm.DB
}

// NewPropertyHandler constructs PropertyHandler.
func NewPropertyHandler(db *gorm.DB) *PropertyHandler {
	return &PropertyHandler{db: db}
}

// List returns properties newest first, with the shared listing filters.
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	query := applyListingFilters(c, h.db)

	var properties []models.Property
	if err := query.Order("created_at desc").Find(&properties).Error; err != nil {
		return err
	}
	return c.JSON(properties)
}

// Mine returns the authenticated user's own properties, newest first.
func (h *PropertyHandler) Mine(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "No token, authorization denied")
	}

	var properties []models.Property
	if err := h.db.Where("created_by = ?", userID).
		Order("created_at desc").Find(&properties).Error; err != nil {
		return err
	}
	return c.JSON(properties)
}

// Get returns a single property. Malformed and unknown ids are both 404.
func (h *PropertyHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Property not found")
	}

	var property models.Property
	if err := h.db.First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Property not found")
		}
		return err
	}
	return c.JSON(property)
}

type createPropertyRequest struct {
	Name          string          `json:"name"`
	Location      models.Location `json:"location"`
	Price         string          `json:"price"`
	Size          string          `json:"size"`
	Status        string          `json:"status"`
	Configuration string          `json:"configuration"`
	VideoLink     string          `json:"video_link"`
	FeaturedTag   string          `json:"featured_tag"`
	ForSale       bool            `json:"for_sale"`
	ForRent       bool            `json:"for_rent"`
	ImageURL      string          `json:"image_url"`
	GalleryURLs   []string        `json:"gallery_urls"`
	Type          string          `json:"type"`
}

// Create persists a new property owned by the authenticated user.
func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "No token, authorization denied")
	}

	var req createPropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	if req.Type == "" {
		req.Type = models.ListingTypeLead
	}
	if !models.ValidListingType(req.Type) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid type")
	}

	req.Location.Normalize()

	property := models.Property{
		Name:          req.Name,
		Location:      req.Location,
		Price:         req.Price,
		Size:          req.Size,
		Status:        req.Status,
		Configuration: req.Configuration,
		VideoLink:     req.VideoLink,
		FeaturedTag:   req.FeaturedTag,
		ForSale:       req.ForSale,
		ForRent:       req.ForRent,
		ImageURL:      req.ImageURL,
		GalleryURLs:   emptyIfNil(req.GalleryURLs),
		Type:          req.Type,
		CreatedBy:     &userID,
	}

	if err := h.db.Create(&property).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(property)
}

// propertyPatch captures a partial update; see projectPatch.
type propertyPatch struct {
	Name          utils.Optional[string]          `json:"name"`
	Location      utils.Optional[models.Location] `json:"location"`
	Price         utils.Optional[string]          `json:"price"`
	Size          utils.Optional[string]          `json:"size"`
	Status        utils.Optional[string]          `json:"status"`
	Configuration utils.Optional[string]          `json:"configuration"`
	VideoLink     utils.Optional[string]          `json:"video_link"`
	FeaturedTag   utils.Optional[string]          `json:"featured_tag"`
	ForSale       utils.Optional[bool]            `json:"for_sale"`
	ForRent       utils.Optional[bool]            `json:"for_rent"`
	ImageURL      utils.Optional[string]          `json:"image_url"`
	ImageName     utils.Optional[string]          `json:"image_name"`
	GalleryURLs   utils.Optional[[]string]        `json:"gallery_urls"`
	BrochureURL   utils.Optional[string]          `json:"brochure_url"`
	Type          utils.Optional[string]          `json:"type"`
}

func buildPropertyUpdates(p propertyPatch) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	putString(updates, "name", p.Name)
	putString(updates, "price", p.Price)
	putString(updates, "size", p.Size)
	putString(updates, "status", p.Status)
	putString(updates, "configuration", p.Configuration)
	putString(updates, "video_link", p.VideoLink)
	putString(updates, "featured_tag", p.FeaturedTag)
	putString(updates, "image_url", p.ImageURL)
	putString(updates, "image_name", p.ImageName)
	putString(updates, "brochure_url", p.BrochureURL)
	putBool(updates, "for_sale", p.ForSale)
	putBool(updates, "for_rent", p.ForRent)
	putStringArray(updates, "gallery_urls", p.GalleryURLs)

	if p.Location.Set {
		loc := p.Location.Value
		loc.Normalize()
		updates["location_place"] = loc.Place
		updates["location_city"] = loc.City
	}

	if p.Type.Set {
		if !p.Type.Valid || !models.ValidListingType(p.Type.Value) {
			return nil, errors.New("invalid type")
		}
		updates["type"] = p.Type.Value
	}

	return updates, nil
}

// Update applies a whitelisted-field partial update.
func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Property not found")
	}

	var patch propertyPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates, err := buildPropertyUpdates(patch)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var property models.Property
	if err := h.db.First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Property not found")
		}
		return err
	}

	if len(updates) > 0 {
		if err := h.db.Model(&property).Updates(updates).Error; err != nil {
			return err
		}
	}

	if err := h.db.First(&property, "id = ?", id).Error; err != nil {
		return err
	}
	return c.JSON(property)
}

// Delete removes a property. Deleting twice reports not found.
func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Property not found")
	}

	result := h.db.Delete(&models.Property{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Property not found")
	}

	return c.JSON(fiber.Map{"msg": "Property deleted"})
}

// Locations returns the distinct normalized cities present across both
// listing kinds, sorted.
func (h *PropertyHandler) Locations(c *fiber.Ctx) error {
	var cities []string
	if err := h.db.Model(&models.Property{}).
		Where("location_city <> ''").
		Distinct().Pluck("location_city", &cities).Error; err != nil {
		return err
	}

	var projectCities []string
	if err := h.db.Model(&models.Project{}).
		Where("location_city <> ''").
		Distinct().Pluck("location_city", &projectCities).Error; err != nil {
		return err
	}

	seen := map[string]bool{}
	merged := make([]string, 0, len(cities)+len(projectCities))
	for _, city := range append(cities, projectCities...) {
		normalized := utils.NormalizeCity(city)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		merged = append(merged, normalized)
	}

	sort.Strings(merged)
	return c.JSON(merged)
}
