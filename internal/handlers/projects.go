package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/example/damrideal/internal/middleware"
	"github.com/example/damrideal/internal/models"
	"github.com/example/damrideal/internal/utils"
)

// ProjectHandler manages project listings.
type ProjectHandler struct {
	db *gorm.DB
}

// NewProjectHandler constructs ProjectHandler.
func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{db: db}
}

// List returns projects newest first. Inactive projects never show up
// on the public listing. Supports for_sale, for_rent and type filters.
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	query := h.db.Where("status <> ?", models.StatusInactive)
	query = applyListingFilters(c, query)

	var projects []models.Project
	if err := query.Order("created_at desc").Find(&projects).Error; err != nil {
		return err
	}
	return c.JSON(projects)
}

// Mine returns the authenticated user's own projects, newest first.
func (h *ProjectHandler) Mine(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "No token, authorization denied")
	}

	var projects []models.Project
	if err := h.db.Where("created_by = ?", userID).
		Order("created_at desc").Find(&projects).Error; err != nil {
		return err
	}
	return c.JSON(projects)
}

// Get returns a single project. Malformed and unknown ids are both 404.
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Project not found")
	}

	var project models.Project
	if err := h.db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Project not found")
		}
		return err
	}
	return c.JSON(project)
}

type createProjectRequest struct {
	Title        string          `json:"title"`
	Location     models.Location `json:"location"`
	PriceRange   string          `json:"price_range"`
	About        string          `json:"about"`
	Description  string          `json:"description"`
	ProjectSize  string          `json:"project_size"`
	LaunchDate   string          `json:"launch_date"`
	Type         string          `json:"type"`
	ForSale      bool            `json:"for_sale"`
	ForRent      bool            `json:"for_rent"`
	TopAmenities []string        `json:"top_amenities"`
	Tags         []string        `json:"tags"`
	ImageName    string          `json:"image_name"`
	ImageURL     string          `json:"image_url"`
	Status       string          `json:"status"`
}

// Create persists a new project owned by the authenticated user.
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "No token, authorization denied")
	}

	var req createProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Title == "" {
		return fiber.NewError(fiber.StatusBadRequest, "title is required")
	}

	if req.Status == "" {
		req.Status = models.StatusActive
	}
	if !models.ValidStatus(req.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid status")
	}

	if req.Type == "" {
		req.Type = models.ListingTypeLead
	}
	if !models.ValidListingType(req.Type) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid type")
	}

	req.Location.Normalize()

	project := models.Project{
		Title:        req.Title,
		Location:     req.Location,
		PriceRange:   req.PriceRange,
		About:        req.About,
		Description:  req.Description,
		ProjectSize:  req.ProjectSize,
		LaunchDate:   req.LaunchDate,
		Type:         req.Type,
		ForSale:      req.ForSale,
		ForRent:      req.ForRent,
		TopAmenities: emptyIfNil(req.TopAmenities),
		Tags:         emptyIfNil(req.Tags),
		Gallery:      pq.StringArray{},
		GalleryURLs:  pq.StringArray{},
		ImageName:    req.ImageName,
		ImageURL:     req.ImageURL,
		Status:       req.Status,
		CreatedBy:    &userID,
	}

	if err := h.db.Create(&project).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// projectPatch captures a partial update. Every field is tri-state:
// absent leaves the column alone, null clears it, a value replaces it.
type projectPatch struct {
	Title        utils.Optional[string]          `json:"title"`
	Location     utils.Optional[models.Location] `json:"location"`
	PriceRange   utils.Optional[string]          `json:"price_range"`
	About        utils.Optional[string]          `json:"about"`
	Description  utils.Optional[string]          `json:"description"`
	ProjectSize  utils.Optional[string]          `json:"project_size"`
	LaunchDate   utils.Optional[string]          `json:"launch_date"`
	Type         utils.Optional[string]          `json:"type"`
	ForSale      utils.Optional[bool]            `json:"for_sale"`
	ForRent      utils.Optional[bool]            `json:"for_rent"`
	TopAmenities utils.Optional[[]string]        `json:"top_amenities"`
	Tags         utils.Optional[[]string]        `json:"tags"`
	Gallery      utils.Optional[[]string]        `json:"gallery"`
	GalleryURLs  utils.Optional[[]string]        `json:"gallery_urls"`
	ImageName    utils.Optional[string]          `json:"image_name"`
	ImageURL     utils.Optional[string]          `json:"image_url"`
	BrochureURL  utils.Optional[string]          `json:"brochure_url"`
	Status       utils.Optional[string]          `json:"status"`
}

func buildProjectUpdates(p projectPatch) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	putString(updates, "title", p.Title)
	putString(updates, "price_range", p.PriceRange)
	putString(updates, "about", p.About)
	putString(updates, "description", p.Description)
	putString(updates, "project_size", p.ProjectSize)
	putString(updates, "launch_date", p.LaunchDate)
	putString(updates, "image_name", p.ImageName)
	putString(updates, "image_url", p.ImageURL)
	putString(updates, "brochure_url", p.BrochureURL)
	putBool(updates, "for_sale", p.ForSale)
	putBool(updates, "for_rent", p.ForRent)
	putStringArray(updates, "top_amenities", p.TopAmenities)
	putStringArray(updates, "tags", p.Tags)
	putStringArray(updates, "gallery", p.Gallery)
	putStringArray(updates, "gallery_urls", p.GalleryURLs)

	if p.Location.Set {
		loc := p.Location.Value
		loc.Normalize()
		updates["location_place"] = loc.Place
		updates["location_city"] = loc.City
	}

	if p.Status.Set {
		if !p.Status.Valid || !models.ValidStatus(p.Status.Value) {
			return nil, errors.New("invalid status")
		}
		updates["status"] = p.Status.Value
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
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Project not found")
	}

	var patch projectPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates, err := buildProjectUpdates(patch)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var project models.Project
	if err := h.db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Project not found")
		}
		return err
	}

	if len(updates) > 0 {
		if err := h.db.Model(&project).Updates(updates).Error; err != nil {
			return err
		}
	}

	if err := h.db.First(&project, "id = ?", id).Error; err != nil {
		return err
	}
	return c.JSON(project)
}

// Delete removes a project. Deleting twice reports not found.
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Project not found")
	}

	result := h.db.Delete(&models.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Project not found")
	}

	return c.JSON(fiber.Map{"msg": "Project deleted"})
}

// applyListingFilters narrows listing queries by the shared query
// params: for_sale, for_rent and type.
func applyListingFilters(c *fiber.Ctx, query *gorm.DB) *gorm.DB {
	if v := c.Query("for_sale"); v != "" {
		query = query.Where("for_sale = ?", v == "true")
	}
	if v := c.Query("for_rent"); v != "" {
		query = query.Where("for_rent = ?", v == "true")
	}
	if v := c.Query("type"); v != "" {
		query = query.Where("type = ?", v)
	}
	return query
}

func emptyIfNil(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(values)
}

func putString(updates map[string]interface{}, column string, o utils.Optional[string]) {
	if !o.Set {
		return
	}
	if !o.Valid {
		updates[column] = ""
		return
	}
	updates[column] = o.Value
}

func putBool(updates map[string]interface{}, column string, o utils.Optional[bool]) {
	if !o.Set {
		return
	}
	updates[column] = o.Valid && o.Value
}

func putStringArray(updates map[string]interface{}, column string, o utils.Optional[[]string]) {
	if !o.Set {
		return
	}
	if !o.Valid || o.Value == nil {
		updates[column] = pq.StringArray{}
		return
	}
	updates[column] = pq.StringArray(o.Value)
}
