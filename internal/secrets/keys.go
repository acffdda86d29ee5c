package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups the app's secrets in the OS keychain.
const KeyringService = "leadscout"

// Keychain account names, one per credential.
const (
	AccountSerpAPI     = "leadscout:serpapi"
	AccountScrapingDog = "leadscout:scrapingdog"
	AccountSMTP        = "leadscout:smtp"
	AccountIMAP        = "leadscout:imap"
)

// envFallback maps accounts to environment variables for setups without
// a keychain (CI, containers); a .env file loaded at startup feeds these.
var envFallback = map[string]string{
	AccountSerpAPI:     "SERPAPI_KEY",
	AccountScrapingDog: "SCRAPINGDOG_API_KEY",
	AccountSMTP:        "SMTP_PASSWORD",
	AccountIMAP:        "IMAP_PASSWORD",
}

// Get looks a credential up in the keychain first, then the environment.
func Get(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", errors.New("keyring account name is empty")
	}

	if v, err := keyring.Get(KeyringService, account); err == nil && strings.TrimSpace(v) != "" {
		return v, nil
	}

	if env := envFallback[account]; env != "" {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v, nil
		}
	}

	return "", fmt.Errorf("credential %q not found (set it in the keychain or via %s)", account, envFallback[account])
}

func Set(account, value string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("credential value is empty")
	}
	return keyring.Set(KeyringService, account, value)
}

func Delete(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}
