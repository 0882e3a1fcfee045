package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tillboard/tillboard-api/internal/application/service"
	"github.com/tillboard/tillboard-api/internal/presentation/http/dto/request"
	"github.com/tillboard/tillboard-api/internal/presentation/http/dto/response"
	"github.com/tillboard/tillboard-api/pkg/pagination"
	"github.com/tillboard/tillboard-api/pkg/utils"
)

// AccountHandler handles Loyverse account HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// List returns the user's connected accounts
// @Summary List Accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	result, err := h.accountService.List(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Accounts retrieved", result)
}

// Create connects a new Loyverse account
// @Summary Create Account
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body request.CreateAccountRequest true "Account data"
// @Success 201 {object} response.APIResponse
// @Router /accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req request.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.accountService.Create(c.Request.Context(), *userID, &service.CreateAccountInput{
		Name:        req.Name,
		AccessToken: req.AccessToken,
		StoreID:     req.StoreID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Account connected", gin.H{"account": account})
}

// Get returns one account
// @Summary Get Account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.APIResponse
// @Router /accounts/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
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

	account, err := h.accountService.Get(c.Request.Context(), *userID, accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account retrieved", gin.H{"account": account})
}

// Update modifies an account
// @Summary Update Account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body request.UpdateAccountRequest true "Account data"
// @Success 200 {object} response.APIResponse
// @Router /accounts/{id} [put]
func (h *AccountHandler) Update(c *gin.Context) {
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

	var req request.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.accountService.Update(c.Request.Context(), *userID, accountID, &service.UpdateAccountInput{
		Name:        req.Name,
		AccessToken: req.AccessToken,
		StoreID:     req.StoreID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account updated", gin.H{"account": account})
}

// Delete removes an account
// @Summary Delete Account
// @Tags accounts
// @Param id path string true "Account ID"
// @Success 200 {object} response.APIResponse
// @Router /accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
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

	if err := h.accountService.Delete(c.Request.Context(), *userID, accountID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account removed", nil)
}
