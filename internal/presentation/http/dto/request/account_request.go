package request

// CreateAccountRequest represents a request to connect a Loyverse account
type CreateAccountRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	AccessToken string `json:"access_token" binding:"required"`
	StoreID     string `json:"store_id"` // empty means all stores
}

// UpdateAccountRequest represents an account update; omitted fields keep
// their current values
type UpdateAccountRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	AccessToken *string `json:"access_token"`
	StoreID     *string `json:"store_id"`
}

// TakingsQuery represents the query parameters of a takings request
type TakingsQuery struct {
	StartDate string `form:"start_date"`
	StoreID   string `form:"store_id"`
	Refresh   bool   `form:"refresh"`
}
