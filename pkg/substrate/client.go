package substrate

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// ErrNoConnection is returned when none of the configured endpoints could be
// dialed.
var ErrNoConnection = errors.New("cannot connect to any rpc endpoint")

type Client interface {
	AccountInfo(ctx context.Context, account PublicKey) (*AccountInfo, error)
	Nominators(ctx context.Context, stash PublicKey) (*Nominations, error)
	Bonded(ctx context.Context, stash PublicKey) (*PublicKey, error)
	Ledger(ctx context.Context, controller PublicKey) (*StakingLedger, error)
}

type rpcClient struct {
	mutex     sync.Mutex
	endpoints []string
	next      int
	inner     *rpc.Client
}

// NewClient returns a client connecting lazily to the first reachable
// endpoint. A broken connection is dropped and the next call dials the
// following endpoint.
func NewClient(endpoints ...string) *rpcClient {
	return &rpcClient{endpoints: endpoints}
}

func (c *rpcClient) Close() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.inner != nil {
		c.inner.Close()
		c.inner = nil
	}
}

func (c *rpcClient) conn(ctx context.Context) (*rpc.Client, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.inner != nil {
		return c.inner, nil
	}

	for i := range c.endpoints {
		index := (c.next + i) % len(c.endpoints)
		client, err := rpc.DialContext(ctx, c.endpoints[index])
		if err == nil {
			c.next = index
			c.inner = client
			return client, nil
		}
	}

	return nil, ErrNoConnection
}

func (c *rpcClient) drop(client *rpc.Client) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.inner == client {
		c.inner.Close()
		c.inner = nil
		c.next = (c.next + 1) % len(c.endpoints)
	}
}

// GetStorage returns the raw storage value, or nil if the key is not set.
func (c *rpcClient) GetStorage(ctx context.Context, key []byte) ([]byte, error) {
	client, err := c.conn(ctx)
	if err != nil {
		return nil, err
	}

	var result *string
	if err := client.CallContext(ctx, &result, "state_getStorage", hexutil.Encode(key)); err != nil {
		var rpcErr rpc.Error
		if !errors.As(err, &rpcErr) {
			c.drop(client)
		}
		return nil, err
	}

	if result == nil {
		return nil, nil
	}

	return hexutil.Decode(*result)
}

func (c *rpcClient) AccountInfo(ctx context.Context, account PublicKey) (*AccountInfo, error) {
	data, err := c.GetStorage(ctx, StorageKey("System", "Account", Blake2_128Concat, account[:]))
	if err != nil {
		return nil, err
	}

	// Accounts without any balance are not stored.
	if data == nil {
		return &AccountInfo{Free: zero(), Reserved: zero(), Frozen: zero()}, nil
	}

	info, err := DecodeAccountInfo(data)
	if err != nil {
		return nil, fmt.Errorf("decode account info: %w", err)
	}

	return info, nil
}

func (c *rpcClient) Nominators(ctx context.Context, stash PublicKey) (*Nominations, error) {
	data, err := c.GetStorage(ctx, StorageKey("Staking", "Nominators", Twox64Concat, stash[:]))
	if err != nil {
		return nil, err
	}

	if data == nil {
		return &Nominations{}, nil
	}

	return DecodeNominations(data)
}

// Bonded returns the controller of a stash, or nil if the account is not
// bonded.
func (c *rpcClient) Bonded(ctx context.Context, stash PublicKey) (*PublicKey, error) {
	data, err := c.GetStorage(ctx, StorageKey("Staking", "Bonded", Twox64Concat, stash[:]))
	if err != nil {
		return nil, err
	}

	if data == nil {
		return nil, nil
	}

	if len(data) < PublicKeySize {
		return nil, ErrShortData
	}

	var controller PublicKey
	copy(controller[:], data)
	return &controller, nil
}

// Ledger returns nil if the controller has no ledger.
func (c *rpcClient) Ledger(ctx context.Context, controller PublicKey) (*StakingLedger, error) {
	data, err := c.GetStorage(ctx, StorageKey("Staking", "Ledger", Blake2_128Concat, controller[:]))
	if err != nil {
		return nil, err
	}

	if data == nil {
		return nil, nil
	}

	return DecodeStakingLedger(data)
}

func zero() *big.Int {
	return new(big.Int)
}
