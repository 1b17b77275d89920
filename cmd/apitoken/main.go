// Command apitoken issues a signed API token for a named client.
//
//	apitoken -client deploy-bot [-expiry 72h]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vaultpass/passforge/internal/config"
	"github.com/vaultpass/passforge/internal/crypto"
)

func main() {
	client := flag.String("client", "", "Client name recorded as the token subject")
	expiry := flag.Duration("expiry", 0, "Token lifetime (defaults to JWT_EXPIRY)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ttl := cfg.JWTExpiry
	if *expiry > 0 {
		ttl = *expiry
	}

	token, err := crypto.IssueToken(*client, cfg.JWTSecret, ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
