// tokengen mints staff tokens for local development and testing. These
// tokens use the dev signing key and will NOT work against a production
// gateway.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"bibliodesk/internal/stafftoken"
	"bibliodesk/pkg/platform/middleware/auth"
)

const (
	// matches config.go when JWT_SIGNING_KEY is not set
	devSigningKey = "dev-secret-key-change-in-production"

	defaultTTL = 8 * time.Hour
)

type tokenOutput struct {
	Token     string            `json:"token"`
	ExpiresIn string            `json:"expires_in"`
	Claims    map[string]string `json:"claims"`
	Usage     map[string]string `json:"usage"`
}

func main() {
	operatorID := flag.String("operator-id", "op-dev", "Operator ID (token subject)")
	role := flag.String("role", auth.RoleStaff, "Role claim (STAFF or ADMIN)")
	key := flag.String("key", devSigningKey, "HS256 signing key")
	ttl := flag.Duration("ttl", defaultTTL, "Token time-to-live")
	jsonOutput := flag.Bool("json", false, "Output as JSON")
	flag.Parse()

	token, err := stafftoken.Issue(*key, *operatorID, *role, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	if *jsonOutput {
		printJSON(tokenOutput{
			Token:     token,
			ExpiresIn: ttl.String(),
			Claims: map[string]string{
				"sub":  *operatorID,
				"role": *role,
			},
			Usage: map[string]string{
				"header": "Authorization: Bearer <token>",
			},
		})
		return
	}

	fmt.Println("Staff Token (JWT)")
	fmt.Println("=================")
	fmt.Printf("Operator ID: %s\n", *operatorID)
	fmt.Printf("Role:        %s\n", *role)
	fmt.Printf("Expires In:  %s\n", *ttl)
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H \"Authorization: Bearer <token>\" http://localhost:8080/console/borrows")
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
