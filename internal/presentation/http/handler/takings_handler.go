package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tillboard/tillboard-api/internal/application/service"
	"github.com/tillboard/tillboard-api/internal/presentation/http/dto/request"
	"github.com/tillboard/tillboard-api/internal/presentation/http/dto/response"
	"github.com/tillboard/tillboard-api/pkg/utils"
)

// defaultWindowDays is how far back a takings query reaches when the client
// does not pass start_date.
const defaultWindowDays = 30

// TakingsHandler handles daily takings HTTP requests
type TakingsHandler struct {
	takingsService *service.TakingsService
}

// NewTakingsHandler creates a new takings handler
func NewTakingsHandler(takingsService *service.TakingsService) *TakingsHandler {
	return &TakingsHandler{takingsService: takingsService}
}

// GetDailyTakings returns per-day revenue summaries for one account
// @Summary Daily Takings
// @Description Aggregated per-day revenue for a connected Loyverse account
// @Tags takings
// @Produce json
// @Param id path string true "Account ID"
// @Param start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param store_id query string false "Limit to one store"
// @Param refresh query bool false "Bypass caches"
// @Success 200 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /accounts/{id}/takings [get]
func (h *TakingsHandler) GetDailyTakings(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	accountID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid account ID")
		return
	}

	var query request.TakingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	if query.StartDate == "" {
		query.StartDate = time.Now().UTC().AddDate(0, 0, -defaultWindowDays).Format("2006-01-02")
	}

	result, err := h.takingsService.GetDailyTakings(c.Request.Context(), *userID, &service.GetTakingsInput{
		AccountID: accountID,
		StoreID:   query.StoreID,
		StartDate: query.StartDate,
		Refresh:   query.Refresh,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Takings retrieved", result)
}

// GetStores returns the account's store catalog for the UI store picker
// @Summary List Stores
// @Tags takings
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.APIResponse
// @Router /accounts/{id}/stores [get]
func (h *TakingsHandler) GetStores(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	accountID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid account ID")
		return
	}

	stores, err := h.takingsService.GetStores(c.Request.Context(), *userID, accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stores retrieved", gin.H{"stores": stores})
}
