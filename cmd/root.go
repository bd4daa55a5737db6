package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-hdwallet/cmd/account"
	"github/chapool/go-hdwallet/cmd/balance"
	"github/chapool/go-hdwallet/cmd/send"
	"github/chapool/go-hdwallet/cmd/server"
	"github/chapool/go-hdwallet/cmd/verify"
	"github/chapool/go-hdwallet/cmd/wallet"
	"github/chapool/go-hdwallet/internal/config"
	"github/chapool/go-hdwallet/internal/util/command"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "hdwallet",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

An Ethereum and Solana HD wallet deriving every key from BIP-39 mnemonics.
Configured through ENV, optionally overlaid with a --config file.`, config.ModuleName),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	rootCmd.PersistentFlags().String(command.ConfigFlag, "", "optional yaml, json or toml config file")

	// attach the subcommands
	rootCmd.AddCommand(
		account.New(),
		balance.New(),
		send.New(),
		server.New(),
		verify.New(),
		wallet.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
