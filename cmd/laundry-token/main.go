// laundry-token выпускает токен пользователя для ручной проверки API.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env"
	"github.com/denmor86/ya-laundry/internal/config"
	"github.com/denmor86/ya-laundry/internal/models"
	"github.com/denmor86/ya-laundry/internal/services"
	"github.com/denmor86/ya-laundry/internal/validators"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// issueToken - токен пользователя с ролью, подписанный секретом сервиса
func issueToken(secret, userID, role string) (string, error) {
	if !validators.CheckUserID(userID) {
		return "", fmt.Errorf("invalid user id %q", userID)
	}
	parsed, ok := models.ParseRole(role)
	if !ok {
		return "", fmt.Errorf("unknown role %q", role)
	}
	return services.NewIdentity(secret).GenerateJWT(models.Actor{ID: userID, Role: parsed})
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env file: %s\n", err)
		os.Exit(1)
	}
	var args config.Arguments
	if err := env.Parse(&args); err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse enviroment var: %s\n", err)
		os.Exit(1)
	}

	var (
		secret = pflag.StringP("secret", "s", args.JWTSecret, "Secret to JWT")
		user   = pflag.StringP("user", "u", "", "User id (uuid).")
		role   = pflag.StringP("role", "r", string(models.RoleCustomer), "User role: customer, staff, courier or admin.")
	)
	pflag.Parse()

	token, err := issueToken(*secret, *user, *role)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
