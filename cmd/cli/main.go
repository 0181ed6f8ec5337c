package main

import (
	"fmt"
	"os"
	"time"

	"github.com/marcelsud/local-library/config"
	"github.com/marcelsud/local-library/internal/user"
	flag "github.com/spf13/pflag"
)

/* cli issues bearer tokens for local development
 * Usage: go run cmd/cli/main.go --user alice --capability can_manage_circulation
 */

func main() {
	userID := flag.String("user", "", "user id the token is issued to")
	capabilities := flag.StringSlice("capability", nil, "capabilities to grant (can_manage_circulation, can_manage_catalog)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "--user is required")
		os.Exit(1)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not configured")
		os.Exit(1)
	}

	u := user.User{ID: *userID}
	for _, c := range *capabilities {
		switch capability := user.Capability(c); capability {
		case user.CanManageCirculation, user.CanManageCatalog:
			u.Capabilities = append(u.Capabilities, capability)
		default:
			fmt.Fprintf(os.Stderr, "unknown capability %q\n", c)
			os.Exit(1)
		}
	}

	token, err := user.GenerateToken(cfg.JWTSecret, u, *ttl)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(token)
}
