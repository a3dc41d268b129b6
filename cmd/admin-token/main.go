package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/forgo/agenda/internal/service"
	"github.com/forgo/agenda/pkg/jwt"
)

func main() {
	// Flags for customization
	privateKeyPath := flag.String("key", "./keys/private.pem", "Path to JWT private key")
	publicKeyPath := flag.String("pub", "./keys/public.pem", "Path to JWT public key (written by -genkeys)")
	genKeys := flag.Bool("genkeys", false, "Generate a new RSA key pair and exit")
	email := flag.String("email", "admin@agenda.dev", "Email for the token")
	name := flag.String("name", "Admin", "Display name for the token")
	roles := flag.String("roles", "admin", "Comma separated roles: teacher, admin, direction, student")
	issuer := flag.String("issuer", "agenda.forgo.software", "JWT issuer")
	expMins := flag.Int("expires", 60*24*7, "Token expiration in minutes (default: 7 days)")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	if *genKeys {
		if err := jwt.GenerateKeyPair(*privateKeyPath, *publicKeyPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating keys: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s and %s\n", *privateKeyPath, *publicKeyPath)
		return
	}

	roleList := splitRoles(*roles)
	if len(service.ParseRoles(roleList)) == 0 {
		fmt.Fprintf(os.Stderr, "No known role in %q\n", *roles)
		os.Exit(1)
	}

	// Create JWT service with just the private key
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: *privateKeyPath,
		Issuer:         *issuer,
		ExpirationMins: *expMins,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nGenerate keys first with: admin-token -genkeys\n")
		os.Exit(1)
	}

	token, err := jwtService.Sign(jwt.Claims{
		Email: *email,
		Name:  *name,
		Roles: roleList,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   *expMins * 60,
			"email":        *email,
			"roles":        roleList,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
		return
	}

	expTime := time.Now().Add(time.Duration(*expMins) * time.Minute)
	fmt.Println("Token Generated")
	fmt.Println("===============")
	fmt.Printf("Email:    %s\n", *email)
	fmt.Printf("Roles:    %s\n", strings.Join(roleList, ", "))
	fmt.Printf("Expires:  %s\n", expTime.Format(time.RFC3339))
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  curl -H 'Authorization: Bearer %s' http://localhost:8080/events/manager/\n", token)
}

func splitRoles(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
