package controllers

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/stratushq/stratus/app/models"
	"github.com/stratushq/stratus/app/repository"
	"github.com/stratushq/stratus/internal/pkg/storage"
	"github.com/stratushq/stratus/internal/pkg/tiers"
)

const maxUploadBytes = 50 * 1024 * 1024

var (
	storageClient *storage.Client
	storageConfig *storage.Config
)

// InitializeDocumentController wires the object-storage client. A nil client
// keeps the endpoints up but rejects uploads.
func InitializeDocumentController(client *storage.Client, cfg *storage.Config) {
	storageClient = client
	storageConfig = cfg
}

// HandleDocumentUpload stores a multipart file in object storage and records
// its metadata. The plan's storage cap is checked against the organization's
// current total before the object is written.
func HandleDocumentUpload(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}
	project, err := projectForOrg(c, ctx)
	if err != nil {
		return err
	}

	if storageClient == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "storage_disabled", "document storage is not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "missing file field")
	}
	if fileHeader.Size <= 0 || fileHeader.Size > maxUploadBytes {
		return jsonError(c, fiber.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the upload limit")
	}

	repos := repository.GetGlobalRepositories()

	tier, err := planTier(ctx.OrganizationID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not check storage quota")
	}
	if tier.MaxStorageGB != tiers.Unlimited {
		used, err := repos.Document.SumSizeByOrganization(ctx.OrganizationID)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not check storage quota")
		}
		limit := int64(tier.MaxStorageGB) * 1024 * 1024 * 1024
		if used+fileHeader.Size > limit {
			return jsonError(c, fiber.StatusForbidden, "quota_exceeded", "storage limit for your plan reached, upgrade to store more documents")
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not read upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not read upload")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	docUUID := uuid.New().String()
	objectKey := storageConfig.ObjectKey(project.UUID, docUUID, filepath.Ext(fileHeader.Filename))

	if _, err := storageClient.Upload(c.Context(), objectKey, contentType, data); err != nil {
		log.Errorf("upload to object storage failed for project %d: %v", project.ID, err)
		return jsonError(c, fiber.StatusBadGateway, "storage_failed", "could not store the document")
	}

	doc := &models.Document{
		UUID:        docUUID,
		ProjectID:   project.ID,
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
		ObjectKey:   objectKey,
		UploadedBy:  ctx.UserID,
	}
	if err := repos.Document.Create(doc); err != nil {
		// Roll the object back so storage and metadata stay consistent.
		if delErr := storageClient.Delete(c.Context(), objectKey); delErr != nil {
			log.Errorf("orphaned object %s could not be removed: %v", objectKey, delErr)
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not save document")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"document": doc})
}

// HandleDocumentList returns the documents stored for a project. With
// ?images=true only files renderable by the photos widget are returned.
func HandleDocumentList(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}
	project, err := projectForOrg(c, ctx)
	if err != nil {
		return err
	}

	repos := repository.GetGlobalRepositories()
	docs, err := repos.Document.GetByProject(project.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not load documents")
	}

	if c.Query("images") == "true" {
		images := make([]models.Document, 0, len(docs))
		for _, d := range docs {
			if d.IsImage() {
				images = append(images, d)
			}
		}
		docs = images
	}

	return c.JSON(fiber.Map{"documents": docs})
}

// HandleDocumentDownload streams a stored document back to the caller.
func HandleDocumentDownload(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}
	project, err := projectForOrg(c, ctx)
	if err != nil {
		return err
	}

	if storageClient == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "storage_disabled", "document storage is not configured")
	}

	doc, err := documentForProject(c, project.ID)
	if err != nil {
		return err
	}

	data, err := storageClient.Download(c.Context(), doc.ObjectKey)
	if err != nil {
		log.Errorf("download from object storage failed for document %s: %v", doc.UUID, err)
		return jsonError(c, fiber.StatusBadGateway, "storage_failed", "could not fetch the document")
	}

	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.FileName))
	return c.Send(data)
}

// HandleDocumentDelete removes a document from storage and its metadata row.
func HandleDocumentDelete(c *fiber.Ctx) error {
	ctx, err := requireUser(c)
	if err != nil {
		return err
	}
	project, err := projectForOrg(c, ctx)
	if err != nil {
		return err
	}

	doc, err := documentForProject(c, project.ID)
	if err != nil {
		return err
	}

	if storageClient != nil {
		if err := storageClient.Delete(c.Context(), doc.ObjectKey); err != nil {
			log.Warnf("could not delete object %s: %v", doc.ObjectKey, err)
		}
	}

	repos := repository.GetGlobalRepositories()
	if err := repos.Document.Delete(doc.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "could not delete document")
	}

	return c.JSON(fiber.Map{"message": "document deleted"})
}

func documentForProject(c *fiber.Ctx, projectID uint) (*models.Document, error) {
	repos := repository.GetGlobalRepositories()
	doc, err := repos.Document.GetByUUID(c.Params("docUUID"))
	if err != nil || doc.ProjectID != projectID {
		return nil, jsonError(c, fiber.StatusNotFound, "not_found", "document not found")
	}
	return doc, nil
}
