// Package main implements devtoken, which prints a signed access token for
// local testing of the visual match API. It reads the same configuration as
// the server, so the token validates against a server sharing its secret.
// Only the auth section is required; no database needs to be configured.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/phrazzld/scry-visual/internal/config"
	"github.com/phrazzld/scry-visual/internal/service/auth"
	"github.com/spf13/pflag"
)

func main() {
	fs := pflag.NewFlagSet("devtoken", pflag.ExitOnError)
	userID := fs.Int64("user-id", 1, "user ID to embed in the token")
	configFile := fs.String("config", "", "path to a YAML config file")
	_ = fs.Parse(os.Args[1:])

	token, err := issue(*userID, *configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

func issue(userID int64, configFile string) (string, error) {
	if userID <= 0 {
		return "", fmt.Errorf("user-id must be positive, got %d", userID)
	}

	authCfg, err := config.LoadAuth(config.WithConfigFile(configFile))
	if err != nil {
		return "", err
	}

	jwtService, err := auth.NewJWTService(*authCfg)
	if err != nil {
		return "", err
	}

	return jwtService.GenerateToken(context.Background(), userID)
}
