package request

import "github.com/shopspring/decimal"

// CreateStaffRequest represents a new staff account
type CreateStaffRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Phone    string  `json:"phone" binding:"required,max=50"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password string  `json:"password" binding:"required,min=6"`
}

// CreateRetailerRequest onboards a B2B retailer with a credit account
type CreateRetailerRequest struct {
	Name             string          `json:"name" binding:"required,max=255"`
	Phone            string          `json:"phone" binding:"required,max=50"`
	Email            *string         `json:"email" binding:"omitempty,email"`
	Password         string          `json:"password" binding:"required,min=6"`
	RetailerShopName *string         `json:"retailer_shop_name"`
	GSTNumber        *string         `json:"gst_number"`
	Address          *string         `json:"address"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
}

// UpdateRetailerRequest updates retailer fields; absent fields are left unchanged
type UpdateRetailerRequest struct {
	Name             *string          `json:"name"`
	Email            *string          `json:"email" binding:"omitempty,email"`
	RetailerShopName *string          `json:"retailer_shop_name"`
	GSTNumber        *string          `json:"gst_number"`
	Address          *string          `json:"address"`
	CreditLimit      *decimal.Decimal `json:"credit_limit"`
}
