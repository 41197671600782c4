package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/damrideal/internal/models"
	"github.com/example/damrideal/internal/services"
)

const (
	maxImageSize    = 10 * 1024 * 1024
	maxBrochureSize = 20 * 1024 * 1024
	maxGalleryFiles = 10
)

var imageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// UploadHandler pushes listing assets to object storage and records the
// returned URLs. A storage failure aborts the request; nothing is
// retried or cleaned up.
type UploadHandler struct {
	db      *gorm.DB
	storage services.ObjectStorage
}

// NewUploadHandler constructs UploadHandler.
func NewUploadHandler(db *gorm.DB, storage services.ObjectStorage) *UploadHandler {
	return &UploadHandler{db: db, storage: storage}
}

// ProjectImage uploads the main image for a project.
func (h *UploadHandler) ProjectImage(c *fiber.Ctx) error {
	project, err := h.findProject(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No image file provided")
	}

	body, ext, err := readImage(file)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("projects/%s/main%s", project.ID, ext)
	url, err := h.storage.Put(c.Context(), key, contentTypeOf(file), body)
	if err != nil {
		return err
	}

	project.ImageName = file.Filename
	project.ImageURL = url
	if err := h.db.Save(project).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"msg":        "Image uploaded successfully",
		"image_url":  url,
		"image_name": file.Filename,
	})
}

// ProjectGallery appends up to ten images to a project's gallery.
func (h *UploadHandler) ProjectGallery(c *fiber.Ctx) error {
	project, err := h.findProject(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No gallery images provided")
	}

	files := form.File["images"]
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No gallery images provided")
	}
	if len(files) > maxGalleryFiles {
		return fiber.NewError(fiber.StatusBadRequest, "too many gallery images")
	}

	uploaded := make([]string, 0, len(files))
	for i, file := range files {
		body, ext, err := readImage(file)
		if err != nil {
			return err
		}

		key := fmt.Sprintf("projects/%s/gallery/%d-%d%s", project.ID, time.Now().UnixMilli(), i, ext)
		url, err := h.storage.Put(c.Context(), key, contentTypeOf(file), body)
		if err != nil {
			return err
		}
		uploaded = append(uploaded, url)

		project.Gallery = append(project.Gallery, file.Filename)
		project.GalleryURLs = append(project.GalleryURLs, url)
	}

	if err := h.db.Save(project).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"msg":          "Gallery uploaded successfully",
		"gallery_urls": uploaded,
	})
}

// ProjectBrochure uploads a PDF brochure for a project.
func (h *UploadHandler) ProjectBrochure(c *fiber.Ctx) error {
	project, err := h.findProject(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("brochure")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No PDF file provided")
	}

	if file.Size > maxBrochureSize {
		return fiber.NewError(fiber.StatusBadRequest, "file too large")
	}
	if contentTypeOf(file) != "application/pdf" {
		return fiber.NewError(fiber.StatusBadRequest, "Only PDF files are allowed")
	}

	body, err := readAll(file)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("projects/%s/brochure.pdf", project.ID)
	url, err := h.storage.Put(c.Context(), key, "application/pdf", body)
	if err != nil {
		return err
	}

	project.BrochureURL = url
	if err := h.db.Save(project).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"msg":          "Brochure uploaded successfully",
		"brochure_url": url,
	})
}

// PropertyImage uploads the main image for a property.
func (h *UploadHandler) PropertyImage(c *fiber.Ctx) error {
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

	file, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No image file provided")
	}

	body, ext, err := readImage(file)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("properties/%s/main%s", property.ID, ext)
	url, err := h.storage.Put(c.Context(), key, contentTypeOf(file), body)
	if err != nil {
		return err
	}

	property.ImageName = file.Filename
	property.ImageURL = url
	if err := h.db.Save(&property).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"msg":        "Image uploaded successfully",
		"image_url":  url,
		"image_name": file.Filename,
	})
}

func (h *UploadHandler) findProject(c *fiber.Ctx) (*models.Project, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Project not found")
	}

	var project models.Project
	if err := h.db.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Project not found")
		}
		return nil, err
	}
	return &project, nil
}

func readImage(file *multipart.FileHeader) ([]byte, string, error) {
	if file.Size > maxImageSize {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "file too large")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "Only image files are allowed")
	}

	body, err := readAll(file)
	if err != nil {
		return nil, "", err
	}
	return body, ext, nil
}

func readAll(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

func contentTypeOf(file *multipart.FileHeader) string {
	return file.Header.Get("Content-Type")
}
