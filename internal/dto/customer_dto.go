package dto

type CreateCustomerRequest struct {
	Name    string  `json:"name"    validate:"required,min=1,max=200"`
	Phone   *string `json:"phone"   validate:"omitempty,max=40"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}

type UpdateCustomerRequest struct {
	Name    string  `json:"name"    validate:"required,min=1,max=200"`
	Phone   *string `json:"phone"   validate:"omitempty,max=40"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}

type CustomerResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
	CreatedAt string  `json:"createdAt"`
}

// CustomerFilter is bound from the query string of GET /v1/customers.
type CustomerFilter struct {
	Search string `form:"search" validate:"omitempty,max=200"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CustomerListResponse struct {
	Data  []CustomerResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
