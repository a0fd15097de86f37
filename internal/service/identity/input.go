package identity

import (
	"net/mail"
	"strings"

	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

// ProfileInput holds the attributes of a new client profile.
type ProfileInput struct {
	FullName         string
	Email            string
	PhoneNumber      string
	CompanyName      string
	CompanyRegNumber string
}

// normalize trims all fields and falls back to fallbackEmail.
func (i ProfileInput) normalize(fallbackEmail string) ProfileInput {
	out := ProfileInput{
		FullName:         strings.TrimSpace(i.FullName),
		Email:            strings.TrimSpace(i.Email),
		PhoneNumber:      strings.TrimSpace(i.PhoneNumber),
		CompanyName:      strings.TrimSpace(i.CompanyName),
		CompanyRegNumber: strings.TrimSpace(i.CompanyRegNumber),
	}
	if out.Email == "" {
		out.Email = strings.TrimSpace(fallbackEmail)
	}
	return out
}

// Validate checks all fields and collects all errors.
func (i ProfileInput) Validate() error {
	var errs []domain.FieldError

	if i.FullName == "" {
		errs = append(errs, domain.FieldError{Field: "full_name", Message: "required"})
	} else if len(i.FullName) > 200 {
		errs = append(errs, domain.FieldError{Field: "full_name", Message: "max 200 characters"})
	}

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if addr, err := mail.ParseAddress(i.Email); err != nil || addr.Address != i.Email {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}

	if len(i.PhoneNumber) > 32 {
		errs = append(errs, domain.FieldError{Field: "phone_number", Message: "max 32 characters"})
	}

	if i.CompanyName == "" {
		errs = append(errs, domain.FieldError{Field: "company_name", Message: "required"})
	} else if len(i.CompanyName) > 200 {
		errs = append(errs, domain.FieldError{Field: "company_name", Message: "max 200 characters"})
	}

	if len(i.CompanyRegNumber) > 64 {
		errs = append(errs, domain.FieldError{Field: "company_reg_number", Message: "max 64 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
