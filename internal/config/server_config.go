package config

import (
	"time"

	"github.com/rs/zerolog"
	"github/chapool/go-hdwallet/internal/util"
)

type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableLoggerMiddleware         bool
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	PrettyPrintConsole bool
}

type Management struct {
	ReadinessTimeout time.Duration
}

// Store selects the key-value backend holding the account list
type Store struct {
	Driver string
	Path   string
	// Passphrase enables at-rest encryption when set
	Passphrase  string `json:"-"`
	DatabaseURL string `json:"-"`
}

type Wallet struct {
	IndexPolicy         string
	MnemonicEntropyBits int
	LegacyScanLimit     int
	LightScrypt         bool
}

type Ethereum struct {
	RPCURLs []string
	ChainID int64
}

type Solana struct {
	RPCURL string
}

type RPC struct {
	Timeout        time.Duration
	PollInterval   time.Duration
	ConfirmTimeout time.Duration
}

type Server struct {
	Echo       EchoServer
	Logger     LoggerServer
	Management Management
	Store      Store
	Wallet     Wallet
	Ethereum   Ethereum
	Solana     Solana
	RPC        RPC
}

// DefaultServiceConfigFromEnv returns the server config as parsed from environment variables
// and their respective defaults defined below.
// We don't expect that ENV_VARs change while we are running our application or our tests
// (and it would be a bad thing to do anyways with parallel testing).
// Do NOT use os.Setenv / os.Unsetenv in tests utilizing DefaultServiceConfigFromEnv()!
func DefaultServiceConfigFromEnv() Server {
	// An `.env.local` file in your project root can override the currently set ENV variables.
	//
	// We never automatically apply `.env.local` when running "go test" as these ENV variables
	// may be sensitive (e.g. secrets to external APIs) and applying them modifies the process
	// global "os.Env" state (it should be applied via t.Setenv instead).
	//
	// If you need dotenv ENV variables available in a test, do that explicitly within that
	// test before executing DefaultServiceConfigFromEnv (or test.WithTestServer).
	if !runningTests() {
		DotEnvTryLoad(util.GetEnv("WALLET_DOTENV_FILE", ".env.local"), setEnvIfUnset)
	}

	return Server{
		Echo: EchoServer{
			Debug:                          util.GetEnvAsBool("SERVER_ECHO_DEBUG", false),
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", "127.0.0.1:8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableLoggerMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
		},
		Logger: LoggerServer{
			Level:              util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_LEVEL", zerolog.InfoLevel.String())),
			RequestLevel:       util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel.String())),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Management: Management{
			ReadinessTimeout: util.GetEnvAsDuration("SERVER_MANAGEMENT_READINESS_TIMEOUT", 4*time.Second),
		},
		Store: Store{
			Driver:      util.GetEnv("WALLET_STORE_DRIVER", "leveldb"),
			Path:        util.GetEnv("WALLET_STORE_PATH", "./data/wallet"),
			Passphrase:  util.GetEnv("WALLET_STORE_PASSPHRASE", ""),
			DatabaseURL: util.GetEnv("DATABASE_URL", ""),
		},
		Wallet: Wallet{
			IndexPolicy:         util.GetEnv("WALLET_INDEX_POLICY", "monotonic"),
			MnemonicEntropyBits: util.GetEnvAsInt("WALLET_MNEMONIC_ENTROPY_BITS", 128),
			LegacyScanLimit:     util.GetEnvAsInt("WALLET_LEGACY_SCAN_LIMIT", 64),
			LightScrypt:         util.GetEnvAsBool("WALLET_STORE_LIGHT_SCRYPT", false),
		},
		Ethereum: Ethereum{
			RPCURLs: util.GetEnvAsStringArr("ETHEREUM_RPC_URLS", []string{}),
			ChainID: util.GetEnvAsInt64("ETHEREUM_CHAIN_ID", 0),
		},
		Solana: Solana{
			RPCURL: util.GetEnv("SOLANA_RPC_URL", ""),
		},
		RPC: RPC{
			Timeout:        util.GetEnvAsDuration("RPC_TIMEOUT", 10*time.Second),
			PollInterval:   util.GetEnvAsDuration("RPC_POLL_INTERVAL", 2*time.Second),
			ConfirmTimeout: util.GetEnvAsDuration("RPC_CONFIRM_TIMEOUT", 2*time.Minute),
		},
	}
}
