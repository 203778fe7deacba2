package config

import "time"

// Config holds the settings of the dydxctl command.
type Config struct {
	API         APIConfig         `koanf:"api"`
	RateLimit   RateLimitConfig   `koanf:"ratelimit"`
	Backoff     BackoffConfig     `koanf:"backoff"`
	Credentials CredentialsConfig `koanf:"credentials"`
	Signer      SignerConfig      `koanf:"signer"`
	Log         LogConfig         `koanf:"log"`
}

// APIConfig selects the endpoints.
type APIConfig struct {
	Host         string        `koanf:"host"`
	InternalHost string        `koanf:"internalhost"`
	Timeout      time.Duration `koanf:"timeout"`
	NetworkID    int           `koanf:"networkid"`
}

// RateLimitConfig limits requests per second of each sub-client. A zero
// limit disables limiting.
type RateLimitConfig struct {
	Limit float64 `koanf:"limit"`
	Burst int     `koanf:"burst"`
}

// BackoffConfig names YAML registry files. Empty paths keep the default
// registry.
type BackoffConfig struct {
	Public  string `koanf:"public"`
	Private string `koanf:"private"`
}

// CredentialsConfig holds optional credentials. A sub-client is enabled only
// when its identifying field is set.
type CredentialsConfig struct {
	Address    string       `koanf:"address"`
	Subaccount int          `koanf:"subaccount"`
	APIKey     APIKeyConfig `koanf:"apikey"`
}

// APIKeyConfig holds v3 API key credentials.
type APIKeyConfig struct {
	Key             string `koanf:"key"`
	Secret          string `koanf:"secret"`
	Passphrase      string `koanf:"passphrase"`
	EthereumAddress string `koanf:"ethereumaddress"`
	StarkPrivateKey string `koanf:"starkprivatekey"`
	PositionID      string `koanf:"positionid"`
}

// SignerConfig runs an external program for order signatures.
type SignerConfig struct {
	Path string   `koanf:"path"`
	Args []string `koanf:"args"`
}

// LogConfig configures zerolog.
type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}
