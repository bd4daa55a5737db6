package signer

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github/chapool/go-hdwallet/internal/util"
	"github/chapool/go-hdwallet/internal/wallet/address"
)

const etherDecimals = 18

// feeCapMultiplier leaves room for the base fee to rise before inclusion
const feeCapMultiplier = 2

func weiAmount(amount decimal.Decimal) (*big.Int, error) {
	wei := amount.Shift(etherDecimals)
	if !wei.IsInteger() {
		return nil, errors.Wrapf(ErrInvalidTransfer, "amount %s has more than %d decimals", amount, etherDecimals)
	}
	return wei.BigInt(), nil
}

// eip1559Fees is the fee data a transfer is signed with
type eip1559Fees struct {
	chainID *big.Int
	nonce   uint64
	tip     *big.Int
	feeCap  *big.Int
	gas     uint64
}

// SendEthereum signs an EIP-1559 transfer, broadcasts it and waits for the receipt.
// Once broadcast the hash is returned even when waiting fails.
func (s *submitter) SendEthereum(ctx context.Context, transfer *ConfirmedTransfer) (string, error) {
	if s.ethereum == nil {
		return "", ErrBackendUnavailable
	}
	req := transfer.Request()
	if req.Chain != address.ChainEthereum {
		return "", errors.Wrapf(ErrInvalidTransfer, "not an ethereum transfer: %s", req.Chain)
	}

	key, err := address.EthereumKeypair{PrivateKey: req.PrivateKey}.ECDSA()
	if err != nil {
		return "", errors.Wrap(err, "failed to load private key")
	}

	value, err := weiAmount(req.Amount)
	if err != nil {
		return "", err
	}

	from := crypto.PubkeyToAddress(key.PublicKey)
	to := common.HexToAddress(req.To)

	fees, err := s.ethereumFees(ctx, from, to, value)
	if err != nil {
		return "", err
	}

	signedTx, err := signEIP1559Transaction(fees, to, value, key)
	if err != nil {
		return "", err
	}

	log := util.LogFromContext(ctx).With().Str("chain", string(address.ChainEthereum)).Str("address", from.Hex()).Logger()

	if err := s.ethereum.SendTransaction(ctx, signedTx); err != nil {
		return "", errors.Wrap(err, "failed to send transaction")
	}
	log.Info().Str("tx_hash", signedTx.Hash().Hex()).Uint64("nonce", fees.nonce).Msg("Transaction sent")

	if err := s.waitForReceipt(ctx, signedTx.Hash()); err != nil {
		return signedTx.Hash().Hex(), err
	}

	return signedTx.Hash().Hex(), nil
}

func (s *submitter) ethereumFees(ctx context.Context, from, to common.Address, value *big.Int) (*eip1559Fees, error) {
	var chainID *big.Int
	if s.config.ChainID > 0 {
		chainID = big.NewInt(s.config.ChainID)
	} else {
		id, err := s.ethereum.ChainID(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get chain id")
		}
		chainID = id
	}

	nonce, err := s.ethereum.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get nonce")
	}

	tip, err := s.ethereum.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get gas tip cap")
	}

	baseFee, err := s.ethereum.BaseFee(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get base fee")
	}

	feeCap := new(big.Int).Mul(baseFee, big.NewInt(feeCapMultiplier))
	feeCap.Add(feeCap, tip)

	gas, err := s.ethereum.EstimateGas(ctx, ethereum.CallMsg{
		From:      from,
		To:        &to,
		GasFeeCap: feeCap,
		GasTipCap: tip,
		Value:     value,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to estimate gas")
	}

	return &eip1559Fees{
		chainID: chainID,
		nonce:   nonce,
		tip:     tip,
		feeCap:  feeCap,
		gas:     gas,
	}, nil
}

// signEIP1559Transaction signs an EIP-1559 transaction
func signEIP1559Transaction(fees *eip1559Fees, to common.Address, value *big.Int, key *ecdsa.PrivateKey) (*types.Transaction, error) {
	//nolint:varnamelen // tx is a common abbreviation for transaction
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   fees.chainID,
		Nonce:     fees.nonce,
		GasTipCap: fees.tip,
		GasFeeCap: fees.feeCap,
		Gas:       fees.gas,
		To:        &to,
		Value:     value,
	})

	signedTx, err := types.SignTx(tx, types.NewLondonSigner(fees.chainID), key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	return signedTx, nil
}

// waitForReceipt polls until the receipt is available. Poll errors are
// retried until ConfirmTimeout since the transaction is already broadcast.
func (s *submitter) waitForReceipt(ctx context.Context, txHash common.Hash) error {
	log := util.LogFromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.config.ConfirmTimeout)
	defer cancel()

	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	var lastErr error
	for {
		receipt, err := s.ethereum.TransactionReceipt(ctx, txHash)
		switch {
		case err == nil:
			if receipt.Status != types.ReceiptStatusSuccessful {
				return errors.Wrapf(ErrTransferReverted, "transaction %s", txHash.Hex())
			}
			return nil
		case !errors.Is(err, ethereum.NotFound):
			lastErr = err
			log.Warn().Err(err).Str("tx_hash", txHash.Hex()).Msg("Failed to get transaction receipt, retrying")
		}

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return errors.Wrapf(ErrConfirmTimeout, "transaction %s: %v (last error: %v)", txHash.Hex(), ctx.Err(), lastErr)
			}
			return errors.Wrapf(ErrConfirmTimeout, "transaction %s: %v", txHash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}
