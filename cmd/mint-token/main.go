package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/angelmondragon/store-service/pkg/auth"
	"github.com/angelmondragon/store-service/pkg/config"
	"github.com/angelmondragon/store-service/pkg/logger"
	"github.com/joho/godotenv"
)

// mint-token prints a bearer token signed with the service secret, for local
// use against the mutating endpoints.
func main() {
	logg := logger.New(logger.Options{ServiceName: "mint-token"})
	_ = godotenv.Load()

	subject := flag.String("sub", "", "token subject (required)")
	ttl := flag.Duration("ttl", 0, "token lifetime; defaults to STORESVC_JWT_EXPIRATION_MINUTES")
	flag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "missing -sub")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	jwtCfg := cfg.JWT
	if *ttl > 0 {
		jwtCfg.ExpirationMinutes = int((*ttl + time.Minute - 1) / time.Minute)
	}

	token, err := auth.MintAccessToken(jwtCfg, time.Now(), auth.AccessTokenPayload{Subject: *subject})
	if err != nil {
		logg.Error(context.Background(), "failed to mint token", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
