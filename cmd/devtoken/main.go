// Command devtoken prints an HS256 bearer token accepted by the server in
// jwt auth mode. It is meant for local development and smoke tests.
//
// Usage:
//
//	devtoken --subject=dev|alice --email=alice@example.com --ttl=1h
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/heartmarshall/equitybridge-backend/internal/auth"
	"github.com/heartmarshall/equitybridge-backend/internal/config"
)

func main() {
	subject := flag.String("subject", "", "principal id (token subject)")
	email := flag.String("email", "", "principal email")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "Usage: devtoken --subject=dev|alice [--email=alice@example.com] [--ttl=1h]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Auth.NormalizedMode() != config.AuthModeJWT {
		log.Fatalf("auth mode is %q; devtoken only works in %q mode", cfg.Auth.Mode, config.AuthModeJWT)
	}

	v := auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)
	token, err := v.Issue(auth.Principal{ID: *subject, Email: *email}, *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println(token)
}
