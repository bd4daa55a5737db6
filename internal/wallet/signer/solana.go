package signer

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github/chapool/go-hdwallet/internal/util"
	"github/chapool/go-hdwallet/internal/wallet/address"
	"github/chapool/go-hdwallet/internal/wallet/chain"
)

const solDecimals = 9

func lamportsAmount(amount decimal.Decimal) (uint64, error) {
	lamports := amount.Shift(solDecimals)
	if !lamports.IsInteger() {
		return 0, errors.Wrapf(ErrInvalidTransfer, "amount %s has more than %d decimals", amount, solDecimals)
	}

	n := lamports.BigInt()
	if !n.IsUint64() {
		return 0, errors.Wrapf(ErrInvalidTransfer, "amount %s out of range", amount)
	}

	return n.Uint64(), nil
}

// SendSolana builds a system transfer, signs it, broadcasts it and waits
// for confirmed commitment. Once broadcast the signature is returned even
// when waiting fails.
func (s *submitter) SendSolana(ctx context.Context, transfer *ConfirmedTransfer) (string, error) {
	if s.solana == nil {
		return "", ErrBackendUnavailable
	}
	req := transfer.Request()
	if req.Chain != address.ChainSolana {
		return "", errors.Wrapf(ErrInvalidTransfer, "not a solana transfer: %s", req.Chain)
	}

	secret, err := address.SolanaKeypair{PrivateKey: req.PrivateKey}.SecretKey()
	if err != nil {
		return "", errors.Wrap(err, "failed to load secret key")
	}
	from := secret.PublicKey()

	to, err := solana.PublicKeyFromBase58(req.To)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse recipient")
	}

	lamports, err := lamportsAmount(req.Amount)
	if err != nil {
		return "", err
	}

	blockhash, err := s.solana.LatestBlockhash(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to get recent blockhash")
	}

	tx, err := buildSolanaTransfer(secret, to, lamports, blockhash)
	if err != nil {
		return "", err
	}

	log := util.LogFromContext(ctx).With().Str("chain", string(address.ChainSolana)).Str("address", from.String()).Logger()

	sig, err := s.solana.SendTransaction(ctx, tx)
	if err != nil {
		return "", errors.Wrap(err, "failed to send transaction")
	}
	log.Info().Str("signature", sig.String()).Uint64("lamports", lamports).Msg("Transaction sent")

	if err := s.waitForSignature(ctx, sig); err != nil {
		return sig.String(), err
	}

	return sig.String(), nil
}

func buildSolanaTransfer(secret solana.PrivateKey, to solana.PublicKey, lamports uint64, blockhash solana.Hash) (*solana.Transaction, error) {
	from := secret.PublicKey()

	instruction, err := system.NewTransferInstruction(lamports, from, to).ValidateAndBuild()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build transfer instruction")
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		blockhash,
		solana.TransactionPayer(from),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build transaction")
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(from) {
			return &secret
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	return tx, nil
}

// waitForSignature polls until sig is confirmed. Only a transaction that
// landed with an error ends the wait early.
func (s *submitter) waitForSignature(ctx context.Context, sig solana.Signature) error {
	log := util.LogFromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.config.ConfirmTimeout)
	defer cancel()

	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	var lastErr error
	for {
		confirmed, err := s.solana.SignatureConfirmed(ctx, sig)
		switch {
		case errors.Is(err, chain.ErrTransactionFailed):
			return errors.Wrapf(err, "signature %s", sig.String())
		case err != nil:
			lastErr = err
			log.Warn().Err(err).Str("signature", sig.String()).Msg("Failed to get signature status, retrying")
		case confirmed:
			return nil
		}

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return errors.Wrapf(ErrConfirmTimeout, "signature %s: %v (last error: %v)", sig.String(), ctx.Err(), lastErr)
			}
			return errors.Wrapf(ErrConfirmTimeout, "signature %s: %v", sig.String(), ctx.Err())
		case <-ticker.C:
		}
	}
}
