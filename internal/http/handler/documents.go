package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docportal/internal/http/middleware"
	"docportal/internal/model"
	"docportal/internal/service"
)

func sessionUser(c *fiber.Ctx) (*model.SessionUser, error) {
	u := middleware.CurrentUser(c)
	if u == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	return u, nil
}

// ListDocuments returns the caller's documents with their statistics.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := sessionUser(c)
		if err != nil {
			return err
		}
		docs, err := svc.List(c.UserContext(), u.ID)
		if err != nil {
			return serviceError(c, err)
		}
		stats, err := svc.Stats(c.UserContext(), u.ID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "documents": docs, "stats": stats})
	}
}

// SearchDocuments filters by the q term and an optional status.
func SearchDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := sessionUser(c)
		if err != nil {
			return err
		}
		docs, err := svc.Search(c.UserContext(), u.ID, c.Query("q"), model.Status(c.Query("status")))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "documents": docs})
	}
}

func DocumentStats(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := sessionUser(c)
		if err != nil {
			return err
		}
		stats, err := svc.Stats(c.UserContext(), u.ID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "stats": stats})
	}
}

// GetDocument returns one document by numeric id.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := sessionUser(c)
		if err != nil {
			return err
		}
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid document id")
		}
		doc, err := svc.Get(c.UserContext(), u.ID, int64(id))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "document": doc})
	}
}

// UploadDocuments ingests a multipart batch (field "files", repeated) sharing one
// description and expiration date. The response is successful when at least one file was stored.
func UploadDocuments(svc service.DocumentService, metrics *IngestMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := sessionUser(c); err != nil {
			return err
		}
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILES_REQUIRED", "multipart form with files is required")
		}

		var files []service.UploadedFile
		for _, field := range []string{"files", "files[]"} {
			for _, fh := range form.File[field] {
				files = append(files, uploadedFile(fh))
			}
		}

		res, err := svc.Ingest(c.UserContext(), service.IngestRequest{
			Actor:          middleware.ActorFrom(c),
			Files:          files,
			Description:    firstValue(form.Value["description"]),
			ExpirationDate: firstValue(form.Value["expirationDate"]),
		})
		if err != nil {
			return serviceError(c, err)
		}
		metrics.Observe(res)

		data := fiber.Map{
			"accepted":       res.Accepted,
			"rejected":       res.Rejected,
			"total_files":    res.TotalFiles,
			"total_accepted": len(res.Accepted),
			"total_rejected": len(res.Rejected),
		}
		if len(res.Accepted) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "no file could be stored",
				"code":    "NO_FILE_ACCEPTED",
				"data":    data,
			})
		}
		return c.JSON(fiber.Map{"success": true, "message": uploadMessage(res), "data": data})
	}
}

func uploadedFile(fh *multipart.FileHeader) service.UploadedFile {
	return service.UploadedFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func uploadMessage(res *service.IngestResult) string {
	msg := fmt.Sprintf("%d files loaded", len(res.Accepted))
	if n := len(res.Rejected); n > 0 {
		msg += fmt.Sprintf(" with %d errors", n)
	}
	return msg
}

func firstValue(v []string) string {
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// DeleteDocument removes a document. The id comes from a form field or a JSON body.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := sessionUser(c); err != nil {
			return err
		}
		id, ok := deleteID(c)
		if !ok {
			return serviceError(c, service.ErrIDRequired)
		}

		doc, err := svc.Delete(c.UserContext(), middleware.ActorFrom(c), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "document deleted",
			"data":    fiber.Map{"id": doc.ID, "name": doc.OriginalName},
		})
	}
}

// deleteID accepts {"id": 7}, {"id": "7"} or id=7.
func deleteID(c *fiber.Ctx) (int64, bool) {
	raw := c.FormValue("id")
	if raw == "" && c.Is("json") {
		var body struct {
			ID json.RawMessage `json:"id"`
		}
		if err := json.Unmarshal(c.Body(), &body); err == nil {
			raw = strings.Trim(string(body.ID), `"`)
		}
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// MethodNotAllowed answers 405 through the application error handler.
func MethodNotAllowed(allow ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(allow) > 0 {
			c.Set(fiber.HeaderAllow, strings.Join(allow, ", "))
		}
		return fiber.ErrMethodNotAllowed
	}
}
