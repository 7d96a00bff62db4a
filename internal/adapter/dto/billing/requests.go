package billing

// CheckoutRequest starts a subscription checkout
type CheckoutRequest struct {
	PlanID string `json:"planId" validate:"required,oneof=lite standard enterprise"`
}

// CheckoutResponse carries the hosted checkout or portal URL
type CheckoutResponse struct {
	URL string `json:"url"`
}

// BillingInfoRequest overwrites the postal billing address
type BillingInfoRequest struct {
	CompanyName  string `json:"companyName" validate:"required"`
	Department   string `json:"department"`
	ContactName  string `json:"contactName" validate:"required"`
	PostalCode   string `json:"postalCode"`
	Address      string `json:"address"`
	BillingEmail string `json:"billingEmail" validate:"omitempty,email"`
}
