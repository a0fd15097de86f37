// Command link-client attaches an identity-provider principal to a legacy
// client registered by email, so the principal can submit funding requests
// against the existing client record.
//
// Usage:
//
//	link-client --email=finance@acme.co.za --principal=auth0|abc123
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/equitybridge-backend/internal/adapter/postgres"
	"github.com/heartmarshall/equitybridge-backend/internal/adapter/postgres/client"
	"github.com/heartmarshall/equitybridge-backend/internal/config"
	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

func main() {
	email := flag.String("email", "", "email of the legacy client")
	principal := flag.String("principal", "", "identity provider subject to link")
	flag.Parse()

	if strings.TrimSpace(*email) == "" || strings.TrimSpace(*principal) == "" {
		fmt.Fprintln(os.Stderr, "Usage: link-client --email=finance@acme.co.za --principal=auth0|abc123")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	c, err := client.New(pool).LinkLegacy(ctx, strings.TrimSpace(*email), strings.TrimSpace(*principal))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		fmt.Printf("No unlinked client found with email %q.\n", *email)
		os.Exit(1)
	case errors.Is(err, domain.ErrAlreadyExists):
		fmt.Printf("Principal %q is already linked to another client.\n", *principal)
		os.Exit(1)
	case err != nil:
		log.Fatalf("link client: %v", err)
	}

	fmt.Printf("Client %s (%s) linked to principal %q.\n", c.ID, c.CompanyName, *principal)
}
