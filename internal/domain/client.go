package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client is a company registered to submit funding requests. Clients
// onboarded through an identity provider carry the provider's principal id;
// legacy clients have none.
type Client struct {
	ID                  uuid.UUID
	ExternalPrincipalID *string
	FullName            string
	Email               string
	PhoneNumber         string
	CompanyName         string
	CompanyRegNumber    string
	CreatedAt           time.Time
}
