package address

import (
	"context"

	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/wallet/hdkey"
)

type service struct {
	ethereum ethereumDeriver
	solana   solanaDeriver
}

// NewService creates a new address Service covering every supported chain
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService() Service {
	return &service{}
}

// DeriveWallet derives the Ethereum and Solana keypairs sharing index
func (s *service) DeriveWallet(ctx context.Context, tree *hdkey.Tree, index uint32) (*Keys, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	eth, err := s.ethereum.derive(tree, index)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to derive %s keypair", ChainEthereum)
	}

	sol, err := s.solana.derive(tree, index)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to derive %s keypair", ChainSolana)
	}

	return &Keys{
		Index:    index,
		Ethereum: eth,
		Solana:   sol,
	}, nil
}

// DeriveAddress derives the public identifier of chain at index
func (s *service) DeriveAddress(ctx context.Context, tree *hdkey.Tree, chain Chain, index uint32) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	deriver, err := s.Deriver(chain)
	if err != nil {
		return "", err
	}

	keypair, err := deriver.Derive(tree, index)
	if err != nil {
		return "", errors.Wrapf(err, "failed to derive %s keypair", chain)
	}

	return keypair.Identifier(), nil
}

// Deriver returns the deriver of chain
//
//nolint:ireturn // Deriver variant is chosen by chain
func (s *service) Deriver(chain Chain) (Deriver, error) {
	switch chain {
	case ChainEthereum:
		return s.ethereum, nil
	case ChainSolana:
		return s.solana, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedChain, "chain %q", chain)
	}
}
