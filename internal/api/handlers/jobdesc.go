package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"hireboard-api/internal/api/middleware"
	"hireboard-api/internal/logging"
	"hireboard-api/internal/store"
	"hireboard-api/pkg/models"
	"hireboard-api/pkg/utils"
)

var validate = validator.New()

// CreateJobDescriptionHandler handles POST /job-descriptions. The record is
// validated before the store is touched and always owned by the caller.
func CreateJobDescriptionHandler(records store.RecordStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID, _ := c.Get("request_id").(string)
		logger := logging.LogWithRequestID(requestID)
		identity := middleware.CurrentIdentity(c)

		var req models.CreateJobDescriptionRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind create request", map[string]interface{}{"error": err.Error()})
			cerr := utils.NewBadRequestError("Invalid request format")
			return c.JSON(cerr.Status, cerr.Response(requestID))
		}

		if err := validate.Struct(&req); err != nil {
			logger.Error("Create request validation failed", map[string]interface{}{"error": err.Error()})
			cerr := utils.NewValidationError("Title and description are required", err.Error())
			return c.JSON(cerr.Status, cerr.Response(requestID))
		}

		record := &models.JobDescription{
			Title:       req.Title,
			CompanyName: req.CompanyName,
			Description: req.Description,
			DocumentURL: req.DocumentURL,
			CreatedBy:   identity.ID,
		}

		inserted, err := records.Insert(c.Request().Context(), record)
		if err != nil {
			logger.Error("Job description insert failed", map[string]interface{}{
				"user_id": identity.ID,
				"error":   err.Error(),
			})
			cerr := utils.NewStoreError("Database insert failed", err.Error())
			return c.JSON(cerr.Status, cerr.Response(requestID))
		}

		logger.Info("Job description created", map[string]interface{}{
			"user_id":   identity.ID,
			"record_id": inserted.ID,
		})

		return c.JSON(http.StatusCreated, models.CreateJobDescriptionResponse{
			Success: true,
			Data:    inserted,
		})
	}
}

// ListJobDescriptionsHandler handles GET /job-descriptions. Only the
// caller's own records are returned, newest first.
func ListJobDescriptionsHandler(records store.RecordStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID, _ := c.Get("request_id").(string)
		logger := logging.LogWithRequestID(requestID)
		identity := middleware.CurrentIdentity(c)

		results, err := records.ListByCreator(c.Request().Context(), identity.ID)
		if err != nil {
			logger.Error("Job description list failed", map[string]interface{}{
				"user_id": identity.ID,
				"error":   err.Error(),
			})
			cerr := utils.NewStoreError("Database fetch failed", err.Error())
			return c.JSON(cerr.Status, cerr.Response(requestID))
		}

		return c.JSON(http.StatusOK, models.ListJobDescriptionsResponse{Data: results})
	}
}

// JobDescriptionStatsHandler handles GET /job-descriptions/stats with a real
// aggregation over the caller's records.
func JobDescriptionStatsHandler(records store.RecordStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID, _ := c.Get("request_id").(string)
		logger := logging.LogWithRequestID(requestID)
		identity := middleware.CurrentIdentity(c)

		stats, err := records.CreatorStats(c.Request().Context(), identity.ID)
		if err != nil {
			logger.Error("Job description stats failed", map[string]interface{}{
				"user_id": identity.ID,
				"error":   err.Error(),
			})
			cerr := utils.NewStoreError("Database aggregation failed", err.Error())
			return c.JSON(cerr.Status, cerr.Response(requestID))
		}

		return c.JSON(http.StatusOK, models.JobDescriptionStatsResponse{Data: stats})
	}
}
