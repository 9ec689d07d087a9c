// Package credentials resolves the provider integration credentials for a
// player's currency. Values come from viper config with staging defaults.
package credentials

import (
	"strings"

	"github.com/spf13/viper"
)

// Credentials is the per-currency integration material: the shared secret
// the provider sends on callbacks, the wallet API material and the game
// launch endpoints.
type Credentials struct {
	SecretKey    string
	WalletURL    string
	WalletAPIKey string
	WalletSecret string
	GameURL      string
	VisualURL    string
	SigningKey   string
	ClientID     string
}

// Resolver maps a currency to its configured credentials.
type Resolver struct{}

func NewResolver() *Resolver {
	viper.SetDefault("providers.aix.secret_key", "ais-secret-key")
	viper.SetDefault("providers.aix.wallet_url", "http://localhost:9200")
	viper.SetDefault("providers.aix.wallet_api_key", "staging-api-key")
	viper.SetDefault("providers.aix.wallet_secret", "staging-api-secret")
	viper.SetDefault("providers.aix.game_url", "https://staging.aix-gaming.com/launch")
	viper.SetDefault("providers.aix.visual_url", "https://staging.aix-gaming.com/visual")
	viper.SetDefault("providers.aix.signing_key", "staging-signing-key")
	viper.SetDefault("providers.aix.client_id", "staging")

	return &Resolver{}
}

// ByCurrency returns the credentials configured for a currency, falling back
// to the staging defaults when the currency has no dedicated block.
func (r *Resolver) ByCurrency(currency string) *Credentials {
	prefix := "providers.aix.credentials." + strings.ToLower(currency) + "."
	return &Credentials{
		SecretKey:    getOrDefault(prefix+"secret_key", "providers.aix.secret_key"),
		WalletURL:    getOrDefault(prefix+"wallet_url", "providers.aix.wallet_url"),
		WalletAPIKey: getOrDefault(prefix+"wallet_api_key", "providers.aix.wallet_api_key"),
		WalletSecret: getOrDefault(prefix+"wallet_secret", "providers.aix.wallet_secret"),
		GameURL:      getOrDefault(prefix+"game_url", "providers.aix.game_url"),
		VisualURL:    getOrDefault(prefix+"visual_url", "providers.aix.visual_url"),
		SigningKey:   getOrDefault(prefix+"signing_key", "providers.aix.signing_key"),
		ClientID:     getOrDefault(prefix+"client_id", "providers.aix.client_id"),
	}
}

func getOrDefault(key, fallback string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return viper.GetString(fallback)
}
