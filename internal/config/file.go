package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github/chapool/go-hdwallet/internal/util"
)

// LoadServiceConfig starts from DefaultServiceConfigFromEnv and overlays the
// keys set in path (yaml, json or toml). An empty path skips the overlay.
func LoadServiceConfig(path string) (Server, error) {
	cfg := DefaultServiceConfigFromEnv()
	if path == "" {
		return cfg, cfg.Validate()
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return cfg, errors.Wrapf(err, "failed to read config file %s", path)
	}

	overlay(v, &cfg)

	return cfg, cfg.Validate()
}

func overlay(v *viper.Viper, cfg *Server) {
	setString(v, "echo.listenAddress", &cfg.Echo.ListenAddress)
	setBool(v, "echo.debug", &cfg.Echo.Debug)

	if v.IsSet("logger.level") {
		cfg.Logger.Level = util.LogLevelFromString(v.GetString("logger.level"))
	}
	setBool(v, "logger.prettyPrintConsole", &cfg.Logger.PrettyPrintConsole)

	setString(v, "store.driver", &cfg.Store.Driver)
	setString(v, "store.path", &cfg.Store.Path)
	setString(v, "store.passphrase", &cfg.Store.Passphrase)
	setString(v, "store.databaseURL", &cfg.Store.DatabaseURL)

	setString(v, "wallet.indexPolicy", &cfg.Wallet.IndexPolicy)
	setInt(v, "wallet.mnemonicEntropyBits", &cfg.Wallet.MnemonicEntropyBits)
	setInt(v, "wallet.legacyScanLimit", &cfg.Wallet.LegacyScanLimit)
	setBool(v, "wallet.lightScrypt", &cfg.Wallet.LightScrypt)

	if v.IsSet("ethereum.rpcURLs") {
		cfg.Ethereum.RPCURLs = v.GetStringSlice("ethereum.rpcURLs")
	}
	if v.IsSet("ethereum.chainID") {
		cfg.Ethereum.ChainID = v.GetInt64("ethereum.chainID")
	}
	setString(v, "solana.rpcURL", &cfg.Solana.RPCURL)

	if v.IsSet("rpc.timeout") {
		cfg.RPC.Timeout = v.GetDuration("rpc.timeout")
	}
	if v.IsSet("rpc.pollInterval") {
		cfg.RPC.PollInterval = v.GetDuration("rpc.pollInterval")
	}
	if v.IsSet("rpc.confirmTimeout") {
		cfg.RPC.ConfirmTimeout = v.GetDuration("rpc.confirmTimeout")
	}
}

func setString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func setBool(v *viper.Viper, key string, dst *bool) {
	if v.IsSet(key) {
		*dst = v.GetBool(key)
	}
}

func setInt(v *viper.Viper, key string, dst *int) {
	if v.IsSet(key) {
		*dst = v.GetInt(key)
	}
}
