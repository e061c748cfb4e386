package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"hireboard-api/internal/api/middleware"
	"hireboard-api/internal/config"
	"hireboard-api/internal/converter"
	"hireboard-api/internal/logging"
	"hireboard-api/internal/parser"
	"hireboard-api/pkg/utils"
)

// DocumentStore uploads source documents to object storage. It is optional;
// a nil store means documents are parsed and discarded.
type DocumentStore interface {
	UploadJobDocument(userID, documentID string, data []byte) (string, error)
}

// ParseJobFileHandler handles POST /parse-job-file: the raw docx body is
// written to a per-request temp file, converted to text, and run through the
// heuristic field extractor. The temp file is removed on every path.
func ParseJobFileHandler(cfg *config.Config, extractor converter.TextExtractor, documents DocumentStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID, _ := c.Get("request_id").(string)
		logger := logging.LogWithRequestID(requestID)
		identity := middleware.CurrentIdentity(c)

		// One byte past the limit distinguishes an oversized chunked body,
		// which carries no Content-Length for the middleware to check, from
		// one that exactly fits.
		body, err := io.ReadAll(io.LimitReader(c.Request().Body, cfg.Uploads.MaxSize+1))
		if err != nil {
			logger.Error("Failed to read upload body", map[string]interface{}{"error": err.Error()})
			cerr := utils.NewBadRequestError("Failed to read document body")
			return c.JSON(cerr.Status, cerr.Response(requestID))
		}

		if int64(len(body)) > cfg.Uploads.MaxSize {
			logger.Warn("Oversized document rejected", map[string]interface{}{
				"user_id":   identity.ID,
				"max_bytes": cfg.Uploads.MaxSize,
			})
			cerr := utils.NewPayloadTooLargeError("Document exceeds the maximum upload size")
			return c.JSON(cerr.Status, cerr.Response(requestID))
		}

		// Unique name per request so concurrent uploads cannot race each
		// other on a shared path.
		documentID := uuid.New().String()
		tmpPath := filepath.Join(cfg.Uploads.TempDir, fmt.Sprintf("job-upload-%s.docx", documentID))

		if err := os.WriteFile(tmpPath, body, 0600); err != nil {
			logger.Error("Failed to write temp document", map[string]interface{}{"error": err.Error()})
			cerr := utils.NewConversionError()
			return c.JSON(cerr.Status, cerr.Response(requestID))
		}
		defer os.Remove(tmpPath)

		text, err := extractor.ExtractText(tmpPath)
		if err != nil {
			logger.Error("Document conversion failed", map[string]interface{}{
				"user_id": identity.ID,
				"error":   err.Error(),
			})
			cerr := utils.NewConversionError()
			return c.JSON(cerr.Status, cerr.Response(requestID))
		}

		result := parser.ParseJobDescription(text)

		// Best effort: a storage failure must not fail a successful parse
		if documents != nil {
			url, err := documents.UploadJobDocument(identity.ID, documentID, body)
			if err != nil {
				logger.Warn("Document storage failed, returning parse result without URL", map[string]interface{}{
					"user_id": identity.ID,
					"error":   err.Error(),
				})
			} else {
				result.DocumentURL = url
			}
		}

		logger.Info("Document parsed", map[string]interface{}{
			"user_id":    identity.ID,
			"title":      result.Title,
			"company":    utils.GetStringOrDefault(result.CompanyName, "<none>"),
			"size_bytes": len(body),
		})

		return c.JSON(http.StatusOK, result)
	}
}
