package funding

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

// maxAmount is the first value that no longer fits NUMERIC(18,2).
var maxAmount = decimal.New(1, 16)

// Exponent bounds for a parsed amount. Comparing or rounding a decimal
// rescales it to 10^|exponent|, so anything outside these bounds is
// rejected before arithmetic. minAmountExponent leaves room for trailing
// zeros such as "1500.500".
const (
	minAmountExponent = -20
	maxAmountExponent = 16
)

// DocumentFile is one uploaded file part.
type DocumentFile struct {
	Filename string
	Content  []byte
}

// SubmitInput holds the fields and files of one funding request submission.
// Documents is keyed by multipart part name; unknown names are ignored.
type SubmitInput struct {
	CompanyName       string
	EndUserDepartment string
	FundingType       string
	FundingAmount     string
	Documents         map[string][]DocumentFile
}

// fields is the validated, normalized form of the text fields.
type fields struct {
	companyName       string
	endUserDepartment string
	fundingType       string
	amount            decimal.Decimal
}

// validateFields checks all text fields and collects all errors.
func (i SubmitInput) validateFields() (fields, error) {
	var errs []domain.FieldError
	f := fields{
		companyName:       strings.TrimSpace(i.CompanyName),
		endUserDepartment: strings.TrimSpace(i.EndUserDepartment),
		fundingType:       strings.TrimSpace(i.FundingType),
	}

	for _, tf := range []struct {
		name, value string
	}{
		{"company_name", f.companyName},
		{"end_user_department", f.endUserDepartment},
		{"funding_type", f.fundingType},
	} {
		switch {
		case tf.value == "":
			errs = append(errs, domain.FieldError{Field: tf.name, Message: "required"})
		case len(tf.value) > 200:
			errs = append(errs, domain.FieldError{Field: tf.name, Message: "max 200 characters"})
		}
	}

	raw := strings.TrimSpace(i.FundingAmount)
	if raw == "" {
		errs = append(errs, domain.FieldError{Field: "funding_amount", Message: "required"})
	} else if amount, err := decimal.NewFromString(raw); err != nil {
		errs = append(errs, domain.FieldError{Field: "funding_amount", Message: "must be a decimal number"})
	} else {
		switch {
		case amount.Exponent() > maxAmountExponent:
			errs = append(errs, domain.FieldError{Field: "funding_amount", Message: "too large"})
		case amount.Exponent() < minAmountExponent:
			errs = append(errs, domain.FieldError{Field: "funding_amount", Message: "max 2 decimal places"})
		case !amount.IsPositive():
			errs = append(errs, domain.FieldError{Field: "funding_amount", Message: "must be greater than zero"})
		case !amount.Equal(amount.Round(2)):
			errs = append(errs, domain.FieldError{Field: "funding_amount", Message: "max 2 decimal places"})
		case amount.GreaterThanOrEqual(maxAmount):
			errs = append(errs, domain.FieldError{Field: "funding_amount", Message: "too large"})
		default:
			f.amount = amount
		}
	}

	if len(errs) > 0 {
		return fields{}, &domain.ValidationError{Errors: errs}
	}
	return f, nil
}
