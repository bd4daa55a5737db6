package wallet

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/types"
	"github/chapool/go-hdwallet/internal/wallet/address"
	"github/chapool/go-hdwallet/internal/wallet/hdkey"
)

// storedAccount is the persisted form of an Account
type storedAccount struct {
	Mnemonic        string         `json:"mnemonic"`
	MnemonicVisible bool           `json:"mnemonicVisible"`
	NextIndex       uint32         `json:"nextIndex"`
	Wallets         []storedWallet `json:"wallets"`
}

type storedWallet struct {
	Index    uint32                  `json:"index"`
	Ethereum address.EthereumKeypair `json:"ethereum"`
	Solana   address.SolanaKeypair   `json:"solana"`
}

// rawAccount accepts the current format and entries written without
// index, nextIndex or with the showMnemonic flag name
type rawAccount struct {
	Mnemonic        *string         `json:"mnemonic"`
	MnemonicVisible *bool           `json:"mnemonicVisible"`
	ShowMnemonic    *bool           `json:"showMnemonic"`
	NextIndex       json.RawMessage `json:"nextIndex"`
	Wallets         []rawWallet     `json:"wallets"`
}

type rawWallet struct {
	Index    json.RawMessage         `json:"index"`
	Ethereum address.EthereumKeypair `json:"ethereum"`
	Solana   address.SolanaKeypair   `json:"solana"`
}

func (w *rawWallet) toWallet(index uint32) *Wallet {
	return &Wallet{
		Index:    index,
		Ethereum: w.Ethereum,
		Solana:   w.Solana,
	}
}

func (r *rawAccount) visible() bool {
	if r.MnemonicVisible != nil {
		return *r.MnemonicVisible
	}
	if r.ShowMnemonic != nil {
		return *r.ShowMnemonic
	}
	return false
}

// toStored converts the account to its persisted form
func (a *Account) toStored() storedAccount {
	s := storedAccount{
		Mnemonic:        a.Mnemonic.Phrase(),
		MnemonicVisible: a.MnemonicVisible,
		NextIndex:       a.NextIndex,
		Wallets:         make([]storedWallet, len(a.Wallets)),
	}
	for i, w := range a.Wallets {
		s.Wallets[i] = storedWallet{
			Index:    w.Index,
			Ethereum: w.Ethereum,
			Solana:   w.Solana,
		}
	}
	return s
}

func encodeAccounts(accounts []*Account) (string, error) {
	stored := make([]storedAccount, len(accounts))
	for i, a := range accounts {
		stored[i] = a.toStored()
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal accounts")
	}
	return string(data), nil
}

var errIndexMissing = errors.New("index missing")

// parseIndex accepts a JSON number or a decimal string below 2^31
func parseIndex(raw json.RawMessage) (uint32, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return 0, errIndexMissing
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		trimmed = strings.TrimSpace(text)
	}

	v, err := strconv.ParseUint(trimmed, 10, 32)
	if err != nil {
		return 0, errors.Errorf("non-numeric index %s", string(raw))
	}
	if v >= uint64(hdkey.HardenedKeyStart) {
		return 0, errors.Wrapf(address.ErrIndexOutOfRange, "index %d", v)
	}

	return uint32(v), nil
}

// ToAccountResponse renders the account without private keys, the mnemonic
// is included only while it is visible
func (a *Account) ToAccountResponse(position int) *types.AccountResponse {
	res := &types.AccountResponse{
		Position:        position,
		MnemonicVisible: a.MnemonicVisible,
		NextIndex:       a.NextIndex,
		Wallets:         make([]*types.WalletResponse, 0, len(a.Wallets)),
	}
	if a.MnemonicVisible {
		res.Mnemonic = a.Mnemonic.Phrase()
	}

	for i, w := range a.Wallets {
		res.Wallets = append(res.Wallets, w.ToWalletResponse(i))
	}

	return res
}

func (w *Wallet) ToWalletResponse(position int) *types.WalletResponse {
	return &types.WalletResponse{
		Position: position,
		Index:    w.Index,
		Ethereum: types.EthereumKeyResponse{
			Address:   w.Ethereum.Address,
			PublicKey: w.Ethereum.PublicKey,
		},
		Solana: types.SolanaKeyResponse{
			PublicKey: w.Solana.PublicKey,
		},
	}
}
