package types

import (
	"strings"

	"github.com/pkg/errors"
)

// EthereumKeyResponse is the public half of an Ethereum keypair
type EthereumKeyResponse struct {
	Address   string `json:"address"`
	PublicKey string `json:"publicKey"`
}

// SolanaKeyResponse is the public half of a Solana keypair
type SolanaKeyResponse struct {
	PublicKey string `json:"publicKey"`
}

type WalletResponse struct {
	Position int                 `json:"position"`
	Index    uint32              `json:"index"`
	Ethereum EthereumKeyResponse `json:"ethereum"`
	Solana   SolanaKeyResponse   `json:"solana"`
}

// AccountResponse carries the mnemonic only while it is visible
type AccountResponse struct {
	Position        int               `json:"position"`
	Mnemonic        string            `json:"mnemonic,omitempty"`
	MnemonicVisible bool              `json:"mnemonicVisible"`
	NextIndex       uint32            `json:"nextIndex"`
	Wallets         []*WalletResponse `json:"wallets"`
}

type GetAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
}

type BalanceResponse struct {
	Ethereum string `json:"ethereum"`
	Solana   string `json:"solana"`
}

type ToggleMnemonicResponse struct {
	MnemonicVisible bool `json:"mnemonicVisible"`
}

// PostCreateAccountPayload imports Mnemonic, or generates one when empty
type PostCreateAccountPayload struct {
	Mnemonic string `json:"mnemonic"`
}

func (p *PostCreateAccountPayload) Validate() error {
	if p.Mnemonic != "" && len(strings.Fields(p.Mnemonic)) < 12 {
		return errors.New("mnemonic must have at least 12 words")
	}
	return nil
}

type DarkModeResponse struct {
	DarkMode bool `json:"darkMode"`
}

// PutDarkModePayload sets the theme preference, DarkMode is required
type PutDarkModePayload struct {
	DarkMode *bool `json:"darkMode"`
}

func (p *PutDarkModePayload) Validate() error {
	if p.DarkMode == nil {
		return errors.New("darkMode is required")
	}
	return nil
}
