package substrate

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
)

const aliceAddress = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
const alicePubkey = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"

func alice(t *testing.T) PublicKey {
	var pk PublicKey
	b, err := hex.DecodeString(alicePubkey)
	require.NoError(t, err)
	copy(pk[:], b)
	return pk
}

func TestDecodeSS58(t *testing.T) {
	pk, prefix, err := DecodeSS58(aliceAddress)
	require.NoError(t, err)
	require.Equal(t, uint16(42), prefix)
	require.Equal(t, alicePubkey, hex.EncodeToString(pk[:]))

	encoded, err := EncodeSS58(pk, 0)
	require.NoError(t, err)
	require.Equal(t, byte('1'), encoded[0])

	pk2, prefix2, err := DecodeSS58(encoded)
	require.NoError(t, err)
	require.Equal(t, uint16(0), prefix2)
	require.Equal(t, pk, pk2)
}

func TestDecodeSS58_Invalid(t *testing.T) {
	_, _, err := DecodeSS58("")
	require.ErrorIs(t, err, ErrInvalidAddress)

	// Last character changed, the checksum does not match anymore.
	_, _, err = DecodeSS58(aliceAddress[:len(aliceAddress)-1] + "Z")
	require.ErrorIs(t, err, ErrInvalidAddress)

	// Base58 alphabet but not an ss58 payload.
	_, _, err = DecodeSS58("1abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUV")
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestTwox128(t *testing.T) {
	require.Equal(t, "26aa394eea5630e07c48ae0c9558cef7", hex.EncodeToString(Twox128([]byte("System"))))
	require.Equal(t, "b99d880ec681799c0cf30e8886371da9", hex.EncodeToString(Twox128([]byte("Account"))))
}

func TestStorageKey(t *testing.T) {
	pk := alice(t)
	key := StorageKey("System", "Account", Blake2_128Concat, pk[:])
	require.Equal(t,
		"26aa394eea5630e07c48ae0c9558cef7"+
			"b99d880ec681799c0cf30e8886371da9"+
			"de1e86a9a8c739864cf3cc5ec2bea59f"+alicePubkey,
		hex.EncodeToString(key),
	)

	concat := Twox64Concat(pk[:])
	require.Len(t, concat, 8+PublicKeySize)
	require.Equal(t, pk[:], concat[8:])

	require.Len(t, StorageKey("Staking", "CurrentEra", nil, nil), 32)
}

func u128(v uint64) []byte {
	b := make([]byte, 16)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func accountInfoBytes(free, reserved, frozen uint64) []byte {
	data := make([]byte, 16)
	binary.LittleEndian.PutUint32(data[0:], 7)
	binary.LittleEndian.PutUint32(data[4:], 1)
	binary.LittleEndian.PutUint32(data[8:], 1)
	data = append(data, u128(free)...)
	data = append(data, u128(reserved)...)
	data = append(data, u128(frozen)...)
	// flags
	return append(data, u128(0)...)
}

func TestDecodeAccountInfo(t *testing.T) {
	info, err := DecodeAccountInfo(accountInfoBytes(12_345_000_000_000, 10_000_000_000, 5))
	require.NoError(t, err)
	require.Equal(t, uint32(7), info.Nonce)
	require.Equal(t, uint32(1), info.Consumers)
	require.Equal(t, big.NewInt(12_345_000_000_000), info.Free)
	require.Equal(t, big.NewInt(10_000_000_000), info.Reserved)
	require.Equal(t, big.NewInt(5), info.Frozen)

	_, err = DecodeAccountInfo(make([]byte, 20))
	require.ErrorIs(t, err, ErrShortData)
}

func TestDecodeCompact(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
		want *big.Int
	}{
		{name: "single byte", data: []byte{0x04}, want: big.NewInt(1)},
		{name: "two bytes", data: []byte{0x15, 0x01}, want: big.NewInt(69)},
		{name: "four bytes", data: []byte{0x02, 0x00, 0x01, 0x00}, want: big.NewInt(16384)},
		{name: "big integer", data: []byte{0x03, 0x00, 0x00, 0x00, 0x40}, want: big.NewInt(1073741824)},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := (&decoder{data: tt.data}).compact()
			require.NoError(t, err)
			require.Equal(t, 0, tt.want.Cmp(got))
		})
	}
}

func TestDecodeNominationsAndLedger(t *testing.T) {
	pk := alice(t)

	nominations, err := DecodeNominations(append(append([]byte{0x08}, pk[:]...), pk[:]...))
	require.NoError(t, err)
	require.Len(t, nominations.Targets, 2)

	_, err = DecodeNominations([]byte{0x08})
	require.Error(t, err)

	// stash, total = 100, active = 64
	ledgerData := append(append([]byte{}, pk[:]...), 0x91, 0x01, 0x01, 0x01)
	ledger, err := DecodeStakingLedger(ledgerData)
	require.NoError(t, err)
	require.Equal(t, pk, ledger.Stash)
	require.Equal(t, int64(100), ledger.Total.Int64())
	require.Equal(t, int64(64), ledger.Active.Int64())
}

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params []string        `json:"params"`
}

func newFakeNode(t *testing.T, storage map[string][]byte) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "state_getStorage", req.Method)

		var result any
		if value, ok := storage[req.Params[0]]; ok {
			result = hexutil.Encode(value)
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result,
		}))
	}))
}

func TestClient(t *testing.T) {
	pk := alice(t)
	controller := PublicKey{1, 2, 3}

	storage := map[string][]byte{
		hexutil.Encode(StorageKey("System", "Account", Blake2_128Concat, pk[:])):         accountInfoBytes(20_000_000_000, 0, 0),
		hexutil.Encode(StorageKey("Staking", "Nominators", Twox64Concat, pk[:])):         append([]byte{0x04}, controller[:]...),
		hexutil.Encode(StorageKey("Staking", "Bonded", Twox64Concat, pk[:])):             controller[:],
		hexutil.Encode(StorageKey("Staking", "Ledger", Blake2_128Concat, controller[:])): append(append([]byte{}, pk[:]...), 0x28, 0x28),
	}

	node := newFakeNode(t, storage)
	defer node.Close()

	client := NewClient(node.URL)
	defer client.Close()

	ctx := context.Background()

	info, err := client.AccountInfo(ctx, pk)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(20_000_000_000), info.Free)

	nominations, err := client.Nominators(ctx, pk)
	require.NoError(t, err)
	require.Len(t, nominations.Targets, 1)

	bonded, err := client.Bonded(ctx, pk)
	require.NoError(t, err)
	require.Equal(t, controller, *bonded)

	ledger, err := client.Ledger(ctx, *bonded)
	require.NoError(t, err)
	require.Equal(t, int64(10), ledger.Active.Int64())

	// Unknown accounts are empty, not errors.
	empty, err := client.AccountInfo(ctx, controller)
	require.NoError(t, err)
	require.Equal(t, 0, empty.Free.Sign())

	notBonded, err := client.Bonded(ctx, controller)
	require.NoError(t, err)
	require.Nil(t, notBonded)
}

func TestClient_FailoverToNextEndpoint(t *testing.T) {
	node := newFakeNode(t, map[string][]byte{})
	defer node.Close()

	client := NewClient("http://127.0.0.1:1", node.URL)
	defer client.Close()

	_, err := client.AccountInfo(context.Background(), PublicKey{})
	require.Error(t, err)

	info, err := client.AccountInfo(context.Background(), PublicKey{})
	require.NoError(t, err)
	require.Equal(t, 0, info.Free.Sign())
}

func TestClient_NoEndpoint(t *testing.T) {
	client := NewClient()
	_, err := client.AccountInfo(context.Background(), PublicKey{})
	require.ErrorIs(t, err, ErrNoConnection)
}
