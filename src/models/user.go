package models

// AccountType distinguishes individuals from organisations.
type AccountType string

const (
	AccountIndividual        AccountType = "individual"
	AccountCompany           AccountType = "company"
	AccountPublicInstitution AccountType = "public_institution"
)

type User struct {
	ID          string      `bson:"_id" json:"id"`
	AccountType AccountType `bson:"account_type" json:"account_type" example:"individual"`
	Name        string      `bson:"name" json:"name" example:"Vizitiu Valentin"`
	Email       string      `bson:"email" json:"email" example:"valentin@example.com"`
	Address     string      `bson:"address" json:"address" example:"7353 South St. Braintree, MA 02184"`
	FiscalCode  string      `bson:"fiscal_code,omitempty" json:"fiscal_code,omitempty"`
	Password    string      `bson:"password" json:"-"` // bcrypt hash, never returned
}

// RegisterRequest is the body accepted when creating a user.
type RegisterRequest struct {
	AccountType AccountType `json:"account_type" validate:"required,oneof=individual company public_institution" example:"individual"`
	Name        string      `json:"name" validate:"required,min=3" example:"Vizitiu Valentin"`
	Email       string      `json:"email" validate:"required,email" example:"valentin@example.com"`
	Password    string      `json:"password" validate:"required,min=4" example:"4321"`
	Address     string      `json:"address" validate:"required"`
	FiscalCode  string      `json:"fiscal_code,omitempty"`
}

// LoginRequest carries the credentials for a bearer token.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}
