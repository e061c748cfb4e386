package models

// CreateJobDescriptionRequest represents the request payload for creating a
// job description record
type CreateJobDescriptionRequest struct {
	Title       string `json:"title" validate:"required"`
	CompanyName string `json:"companyName,omitempty"`
	Description string `json:"description" validate:"required"`
	DocumentURL string `json:"document_url,omitempty" validate:"omitempty,url"`
}

// SignUpRequest represents the request payload for creating an account with
// the hosted auth service
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignInRequest represents the request payload for the password sign-in flow
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
