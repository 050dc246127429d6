// Command token mints a bearer token for the API using the configured secret.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"bizdocs/internal/config"
	"bizdocs/internal/domain"
	"bizdocs/internal/service"
)

func main() {
	_ = godotenv.Load()

	subject := flag.String("sub", "", "token subject (user id)")
	email := flag.String("email", "", "optional email claim")
	role := flag.String("role", string(domain.RoleStaff), "admin or staff")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	token, err := service.NewAuthService(cfg.JWT).IssueToken(*subject, *email, domain.UserRole(*role), *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
