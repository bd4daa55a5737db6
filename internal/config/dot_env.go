package config

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/subosito/gotenv"
)

// DotEnvTryLoad forcefully overrides ENV variables through **a maybe available** .env file.
//
// This function should always be called before executing DefaultServiceConfigFromEnv.
// Pass os.Setenv to override variables, setEnvIfUnset to keep variables already set.
func DotEnvTryLoad(absolutePathToEnvFile string, setEnvFn func(k string, v string) error) {
	env, err := parseEnvFile(absolutePathToEnvFile)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("envFile", absolutePathToEnvFile).Msg("Failed to parse .env file")
		}
		return
	}

	for k, v := range env {
		if err := setEnvFn(k, v); err != nil {
			log.Warn().Err(err).Str("key", k).Msg("Failed to set ENV variable from .env file")
		}
	}

	log.Debug().Str("envFile", absolutePathToEnvFile).Int("count", len(env)).Msg(".env overrides applied")
}

func parseEnvFile(path string) (gotenv.Env, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return gotenv.StrictParse(file)
}

func setEnvIfUnset(k string, v string) error {
	if _, ok := os.LookupEnv(k); ok {
		return nil
	}
	return os.Setenv(k, v)
}
