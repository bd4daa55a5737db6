package chain

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/util"
)

// EVMClient wraps several Ethereum RPC endpoints and fails over between them
type EVMClient struct {
	urls    []string
	mu      sync.Mutex
	clients []*ethclient.Client
	current int
}

var _ EthereumBackend = (*EVMClient)(nil)

// NewEVMClient dials every URL. Endpoints that fail to dial are retried on use.
func NewEVMClient(ctx context.Context, urls []string) (*EVMClient, error) {
	if len(urls) == 0 {
		return nil, errors.New("at least one RPC URL is required")
	}

	log := util.LogFromContext(ctx)

	clients := make([]*ethclient.Client, len(urls))
	connected := 0
	for i, url := range urls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			log.Warn().Str("url", url).Err(err).Msg("Failed to connect to RPC node, will retry on use")
			continue
		}
		clients[i] = client
		connected++
	}

	if connected == 0 {
		return nil, errors.New("failed to connect to any RPC node")
	}

	return &EVMClient{
		urls:    urls,
		clients: clients,
	}, nil
}

// Close closes all client connections
func (c *EVMClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, client := range c.clients {
		if client != nil {
			client.Close()
		}
	}
}

// getClient returns the first healthy client starting at the current one
func (c *EVMClient) getClient(ctx context.Context) (*ethclient.Client, error) {
	log := util.LogFromContext(ctx)

	c.mu.Lock()
	start := c.current
	c.mu.Unlock()

	for i := 0; i < len(c.urls); i++ {
		idx := (start + i) % len(c.urls)

		c.mu.Lock()
		client := c.clients[idx]
		c.mu.Unlock()

		if client == nil {
			dialed, err := ethclient.DialContext(ctx, c.urls[idx])
			if err != nil {
				log.Warn().Str("url", c.urls[idx]).Err(err).Msg("Failed to reconnect to RPC node")
				continue
			}

			c.mu.Lock()
			if c.clients[idx] == nil {
				c.clients[idx] = dialed
			} else {
				dialed.Close()
			}
			client = c.clients[idx]
			c.mu.Unlock()
		}

		// health check
		if _, err := client.ChainID(ctx); err != nil {
			log.Warn().Str("url", c.urls[idx]).Err(err).Msg("RPC client health check failed, trying next node")
			continue
		}

		c.mu.Lock()
		c.current = idx
		c.mu.Unlock()

		return client, nil
	}

	return nil, errors.New("all RPC clients are unavailable")
}

func (c *EVMClient) ChainID(ctx context.Context) (*big.Int, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get RPC client")
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get chain ID")
	}

	return chainID, nil
}

// BalanceAt returns the balance of an address at the latest block
func (c *EVMClient) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get RPC client")
	}

	balance, err := client.BalanceAt(ctx, account, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}

	return balance, nil
}

// PendingNonceAt returns the pending nonce for the given address
func (c *EVMClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get RPC client")
	}

	nonce, err := client.PendingNonceAt(ctx, account)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get pending nonce")
	}

	return nonce, nil
}

// SuggestGasTipCap suggests the EIP-1559 priority fee
func (c *EVMClient) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get RPC client")
	}

	tipCap, err := client.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to suggest gas tip cap")
	}

	return tipCap, nil
}

// BaseFee returns the base fee of the latest block
func (c *EVMClient) BaseFee(ctx context.Context) (*big.Int, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get RPC client")
	}

	header, err := client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get latest header")
	}
	if header.BaseFee == nil {
		return nil, errors.New("chain does not support EIP-1559")
	}

	return header.BaseFee, nil
}

// EstimateGas estimates the gas needed by msg
func (c *EVMClient) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get RPC client")
	}

	gas, err := client.EstimateGas(ctx, msg)
	if err != nil {
		return 0, errors.Wrap(err, "failed to estimate gas")
	}

	return gas, nil
}

// SendTransaction broadcasts a signed transaction
func (c *EVMClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	client, err := c.getClient(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get RPC client")
	}

	if err := client.SendTransaction(ctx, tx); err != nil {
		return errors.Wrap(err, "failed to send transaction")
	}

	return nil
}

// TransactionReceipt returns the receipt of a mined transaction
func (c *EVMClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	client, err := c.getClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get RPC client")
	}

	receipt, err := client.TransactionReceipt(ctx, txHash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, ethereum.NotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction receipt")
	}

	return receipt, nil
}
