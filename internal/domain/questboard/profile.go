package questboard

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/dotway-lab/questboard/internal/common"
	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/pkg/errorx"
	"github.com/dotway-lab/questboard/pkg/kvstore"
	"github.com/dotway-lab/questboard/pkg/xcontext"
	"github.com/google/uuid"
)

const (
	walletKey   = "dotway_wallet"
	profilesKey = "dotway_profiles"

	defaultAppName = "DotWay"
)

// ProfileUpdate changes the non-nil fields of a profile.
type ProfileUpdate struct {
	Username *string
	Avatar   *string
	Bio      *string
	Twitter  *string
	Telegram *string
	Discord  *string
	Email    *string
}

type profileStore struct {
	store   kvstore.Store
	address string
	profile *entity.Profile
}

func newProfileStore(store kvstore.Store) *profileStore {
	return &profileStore{store: store}
}

func (s *profileStore) loadAll(ctx context.Context) (map[string]entity.Profile, error) {
	profiles := map[string]entity.Profile{}

	value, err := s.store.Get(ctx, profilesKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return profiles, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get saved profiles: %v", err)
		return nil, errorx.Unknown
	}

	if err := json.Unmarshal([]byte(value), &profiles); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal saved profiles: %v", err)
		return nil, errorx.Unknown
	}

	return profiles, nil
}

func (s *profileStore) load(ctx context.Context, address string) (*entity.Profile, bool, error) {
	profiles, err := s.loadAll(ctx)
	if err != nil {
		return nil, false, err
	}

	profile, ok := profiles[address]
	if !ok {
		return nil, false, nil
	}

	return &profile, true, nil
}

// save writes the active profile into the saved profiles, keyed by its
// address.
func (s *profileStore) save(ctx context.Context) error {
	profiles, err := s.loadAll(ctx)
	if err != nil {
		return err
	}

	profiles[s.profile.Address] = *s.profile
	b, err := json.Marshal(profiles)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal profiles: %v", err)
		return errorx.Unknown
	}

	if err := s.store.Set(ctx, profilesKey, string(b)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save profiles: %v", err)
		return errorx.Unknown
	}

	return nil
}

// activate loads the saved profile of address, then makes address the active
// wallet of the device.
func (s *profileStore) activate(ctx context.Context, address string) error {
	profile, _, err := s.load(ctx, address)
	if err != nil {
		return err
	}

	if err := s.setWallet(ctx, address); err != nil {
		return err
	}

	s.address = address
	s.profile = profile
	return nil
}

// setWallet persists the active wallet of the device. An empty address
// forgets it.
func (s *profileStore) setWallet(ctx context.Context, address string) error {
	var err error
	if address == "" {
		err = s.store.Remove(ctx, walletKey)
	} else {
		err = s.store.Set(ctx, walletKey, address)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save active wallet: %v", err)
		return errorx.Unknown
	}

	return nil
}

type profileEvent struct {
	Username string `structs:"username"`
	Level    uint64 `structs:"level"`
}

type xpEvent struct {
	Amount uint64 `structs:"amount"`
	XP     uint64 `structs:"xp"`
	Level  uint64 `structs:"level"`
	Reason string `structs:"reason"`
}

// Connect asks the signer for the wallet accounts and makes the first one the
// active wallet. When the extension is missing or refuses the origin, a
// placeholder address is used instead.
func (b *Board) Connect(ctx context.Context, signer Signer) (string, bool, error) {
	if b.IsClosed() {
		return "", false, errorx.New(errorx.SessionClosed, "Session is closed")
	}

	appName := xcontext.Configs(ctx).Quest.AppName
	if appName == "" {
		appName = defaultAppName
	}

	var address string
	placeholder := false
	accounts, err := signer.Enable(ctx, appName)
	switch {
	case errors.Is(err, ErrOriginMismatch), errors.Is(err, ErrNoExtension):
		xcontext.Logger(ctx).Infof("Wallet extension is unusable (%v), use a placeholder address", err)
		address = PlaceholderAddress(time.Now(), rand.Intn(1000000))
		placeholder = true

	case err != nil:
		return "", false, errorx.New(errorx.Unavailable, "%s", err.Error())

	case len(accounts) == 0 || accounts[0] == "":
		return "", false, errorx.New(errorx.Unavailable, "No accounts found in wallet")

	default:
		address = accounts[0]
	}

	err = b.do(ctx, func() error {
		return b.profiles.activate(ctx, address)
	})
	if err != nil {
		return "", false, err
	}

	return address, placeholder, nil
}

// Restore loads the last active wallet of the device and its saved profile.
func (b *Board) Restore(ctx context.Context) error {
	return b.do(ctx, func() error {
		address, err := b.profiles.store.Get(ctx, walletKey)
		if err != nil {
			if errors.Is(err, kvstore.ErrNotFound) {
				return nil
			}

			xcontext.Logger(ctx).Errorf("Cannot get active wallet: %v", err)
			return errorx.Unknown
		}

		profile, _, err := b.profiles.load(ctx, address)
		if err != nil {
			return err
		}

		b.profiles.address = address
		b.profiles.profile = profile
		return nil
	})
}

func (b *Board) LoadProfile(ctx context.Context, address string) (*entity.Profile, bool, error) {
	var profile *entity.Profile
	var ok bool
	err := b.do(ctx, func() error {
		var err error
		profile, ok, err = b.profiles.load(ctx, address)
		return err
	})

	return profile, ok, err
}

// CreateProfile creates the profile of address and makes it active. An empty
// address means the active wallet.
func (b *Board) CreateProfile(ctx context.Context, address, username, avatar string) (entity.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return entity.Profile{}, errorx.New(errorx.Validation, "Username is required")
	}

	var profile entity.Profile
	err := b.do(ctx, func() error {
		if address == "" {
			address = b.profiles.address
		}

		if address == "" {
			return errorx.New(errorx.Validation, "Wallet not connected")
		}

		if _, ok, err := b.profiles.load(ctx, address); err != nil {
			return err
		} else if ok {
			return errorx.New(errorx.AlreadyExists, "Profile of %s already exists", address)
		}

		previousAddress, previousProfile := b.profiles.address, b.profiles.profile
		switched := address != previousAddress
		if switched {
			if err := b.profiles.setWallet(ctx, address); err != nil {
				return err
			}
		}

		profile = entity.Profile{
			ID:       uuid.NewString(),
			Address:  address,
			Username: username,
			Avatar:   avatar,
			XP:       0,
			Level:    entity.LevelOf(0),
			JoinedAt: time.Now(),
		}
		b.profiles.address = address
		b.profiles.profile = &profile

		if err := b.saveProfile(ctx); err != nil {
			b.profiles.address = previousAddress
			b.profiles.profile = previousProfile
			if switched {
				if err := b.profiles.setWallet(ctx, previousAddress); err != nil {
					xcontext.Logger(ctx).Warnf("Cannot restore active wallet %q: %v", previousAddress, err)
				}
			}
			return err
		}

		b.emit(common.EventProfileUpdated, profileEvent{Username: profile.Username, Level: profile.Level})
		return nil
	})
	if err != nil {
		return entity.Profile{}, err
	}

	return profile, nil
}

// UpdateProfile merges the update into the active profile. It returns nil
// without an active profile.
func (b *Board) UpdateProfile(ctx context.Context, update ProfileUpdate) (*entity.Profile, error) {
	if update.Username != nil && strings.TrimSpace(*update.Username) == "" {
		return nil, errorx.New(errorx.Validation, "Username is required")
	}

	var result *entity.Profile
	err := b.do(ctx, func() error {
		p := b.profiles.profile
		if p == nil {
			return nil
		}

		previous := *p
		if update.Username != nil {
			p.Username = strings.TrimSpace(*update.Username)
		}
		if update.Avatar != nil {
			p.Avatar = *update.Avatar
		}
		if update.Bio != nil {
			p.Bio = *update.Bio
		}
		if update.Twitter != nil {
			p.Social.Twitter = *update.Twitter
		}
		if update.Telegram != nil {
			p.Social.Telegram = *update.Telegram
		}
		if update.Discord != nil {
			p.Social.Discord = *update.Discord
		}
		if update.Email != nil {
			p.Social.Email = *update.Email
		}

		if err := b.saveProfile(ctx); err != nil {
			*p = previous
			return err
		}

		b.emit(common.EventProfileUpdated, profileEvent{Username: p.Username, Level: p.Level})
		copied := *p
		result = &copied
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GrantXP adds amount to the active profile. Negative amounts are rejected,
// the call is a no-op without an active profile.
func (b *Board) GrantXP(ctx context.Context, amount int64) (*entity.Profile, error) {
	if amount < 0 {
		return nil, errorx.New(errorx.Validation, "XP amount must not be negative")
	}

	var result *entity.Profile
	err := b.do(ctx, func() error {
		if err := b.grantXP(ctx, uint64(amount), "grant"); err != nil {
			return err
		}

		result = b.activeProfile()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Logout forgets the active wallet of the device. Saved profiles are kept.
func (b *Board) Logout(ctx context.Context) error {
	return b.do(ctx, func() error {
		if err := b.profiles.setWallet(ctx, ""); err != nil {
			return err
		}

		b.profiles.address = ""
		b.profiles.profile = nil
		return nil
	})
}

func (b *Board) Address() string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.profiles.address
}

// Profile returns a copy of the active profile, or nil.
func (b *Board) Profile() *entity.Profile {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.activeProfile()
}

func (b *Board) activeProfile() *entity.Profile {
	if b.profiles.profile == nil {
		return nil
	}

	copied := *b.profiles.profile
	return &copied
}

// grantXP must be called with the mutex held.
func (b *Board) grantXP(ctx context.Context, amount uint64, reason string) error {
	p := b.profiles.profile
	if p == nil {
		return nil
	}

	previous := *p
	p.AddXP(amount)
	if err := b.saveProfile(ctx); err != nil {
		*p = previous
		return err
	}

	b.emit(common.EventXPGranted, xpEvent{Amount: amount, XP: p.XP, Level: p.Level, Reason: reason})
	return nil
}

// saveProfile must be called with the mutex held.
func (b *Board) saveProfile(ctx context.Context) error {
	if err := b.profiles.save(ctx); err != nil {
		return err
	}

	b.pendingMirror = b.activeProfile()
	return nil
}
