// Command token prints an operator token for the watchlist write API.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"stock_notifier/internal/platform/config"
	jwtmw "stock_notifier/internal/platform/jwt"
)

func main() {
	subject := flag.String("sub", "operator", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("failed to load environment", "error", err)
		os.Exit(1)
	}

	gen, err := jwtmw.NewGenerator(env.APIJWTSecret, *ttl)
	if err != nil {
		slog.Error("API_JWT_SECRET must be set", "error", err)
		os.Exit(1)
	}
	tok, err := gen.GenerateToken(*subject)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
