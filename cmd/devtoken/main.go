// Command devtoken prints an access token accepted by the seat selection
// endpoint.  It signs with JWT_SECRET from the environment (or .env) and is
// meant for local development only.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/iliyamo/room-seatmap/internal/config"
	"github.com/iliyamo/room-seatmap/internal/utils"
)

func main() {
	config.LoadDotEnv()

	user := flag.String("user", "1", "subject (user id) of the token")
	role := flag.String("role", "MEMBER", "role claim: MEMBER or ADMIN")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("missing required env var: JWT_SECRET")
	}
	tok, err := utils.NewAccessToken(secret, *user, *role, *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(tok.Token)
	fmt.Fprintf(os.Stderr, "expires %s\n", tok.Exp.Format(time.RFC3339))
}
