package handler

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lexparse/internal/extract"
	"lexparse/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; the extraction pipeline lives behind the service.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", swaggerUI())

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/documents", ListDocuments(docSvc))
	app.Post("/documents", UploadDocument(docSvc))
	app.Get("/documents/:id", GetDocument(docSvc))
	app.Delete("/documents/:id", DeleteDocument(docSvc))
	app.Get("/documents/:id/content", GetParsedContent(docSvc))
	app.Get("/documents/:id/metadata", GetLegalMetadata(docSvc))
	app.Get("/documents/:id/download", GetDownloadURL(docSvc))
}

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a trivial liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListDocuments returns processed documents with limit/offset pagination.
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := docSvc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// UploadDocument accepts a multipart PDF upload (field name: file), runs the
// extraction pipeline, and returns the stored document record.
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		ct := fh.Header.Get("Content-Type")
		if !isPDFUpload(fh.Filename, ct) {
			return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "only PDF uploads are accepted")
		}
		if ct == "" {
			ct = "application/pdf"
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		doc, err := docSvc.Process(c.UserContext(), f, fh.Filename, ct, fh.Size)
		if err != nil {
			switch {
			case errors.Is(err, extract.ErrFileTooLarge):
				return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds the size limit")
			case errors.Is(err, extract.ErrNotPDF), errors.Is(err, extract.ErrEmptyFile):
				return writeError(c, fiber.StatusBadRequest, "INVALID_PDF", "file is not a readable PDF")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument returns a document record by ID.
func GetDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := docSvc.Get(c.UserContext(), id)
		if err != nil {
			return notFoundOrInternal(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes a document and its stored artifacts.
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := docSvc.Delete(c.UserContext(), id); err != nil {
			return notFoundOrInternal(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetParsedContent streams the structural extraction artifact.
func GetParsedContent(docSvc service.DocumentService) fiber.Handler {
	return artifactHandler(func(c *fiber.Ctx, id string) (io.ReadCloser, error) {
		return docSvc.ParsedContent(c.UserContext(), id)
	})
}

// GetLegalMetadata streams the legal metadata artifact.
func GetLegalMetadata(docSvc service.DocumentService) fiber.Handler {
	return artifactHandler(func(c *fiber.Ctx, id string) (io.ReadCloser, error) {
		return docSvc.Metadata(c.UserContext(), id)
	})
}

// GetDownloadURL returns a presigned URL for the original PDF.
func GetDownloadURL(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		url, err := docSvc.DownloadURL(c.UserContext(), id)
		if err != nil {
			return notFoundOrInternal(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

func artifactHandler(fetch func(c *fiber.Ctx, id string) (io.ReadCloser, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, err := fetch(c, id)
		if err != nil {
			return notFoundOrInternal(c, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendStream(rc)
	}
}

// documentID validates the :id path parameter. The second return is false
// for a malformed id; callers must write the 400 themselves, since a nil
// error from a successful error-body write would slip past an err check.
func documentID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func notFoundOrInternal(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

func isPDFUpload(filename, contentType string) bool {
	if strings.EqualFold(contentType, "application/pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}

func swaggerUI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	}
}
