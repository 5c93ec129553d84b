package questboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrOriginMismatch is reported by a wallet extension which refuses the
	// origin of the page, as it happens on preview deployments.
	ErrOriginMismatch = errors.New("origins don't match")
	ErrNoExtension    = errors.New("no wallet extension found")
)

// Signer gives access to the accounts of a wallet extension.
type Signer interface {
	// Enable asks the extension to authorize appName and returns its accounts.
	Enable(ctx context.Context, appName string) ([]string, error)
}

// ExtensionSigner replays the answer a client got from its wallet extension.
type ExtensionSigner struct {
	Accounts []string
	Error    string
}

func (s ExtensionSigner) Enable(ctx context.Context, appName string) ([]string, error) {
	if s.Error == "" {
		return s.Accounts, nil
	}

	msg := strings.ToLower(s.Error)
	switch {
	case strings.Contains(msg, "origins don't match"), strings.Contains(msg, "origins do not match"):
		return nil, fmt.Errorf("%w: %s", ErrOriginMismatch, s.Error)
	case strings.Contains(msg, "no polkadot extension"), strings.Contains(msg, "no extension"):
		return nil, fmt.Errorf("%w: %s", ErrNoExtension, s.Error)
	}

	return nil, errors.New(s.Error)
}

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// PlaceholderAddress synthesizes a Polkadot looking address ("1" followed by
// 47 base58 characters) from a timestamp and a random number. It does not
// carry a valid checksum.
func PlaceholderAddress(now time.Time, random int) string {
	seed := fmt.Sprintf("%d%d", now.UnixMilli(), random)

	var sb strings.Builder
	sb.WriteByte('1')
	for i := 0; i < 47; i++ {
		index := (int(seed[i%len(seed)]) + i) % len(base58Alphabet)
		sb.WriteByte(base58Alphabet[index])
	}

	return sb.String()
}
