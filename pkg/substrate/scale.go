package substrate

import (
	"encoding/binary"
	"errors"
	"math/big"
)

var ErrShortData = errors.New("scale: unexpected end of data")

type AccountInfo struct {
	Nonce       uint32
	Consumers   uint32
	Providers   uint32
	Sufficients uint32
	Free        *big.Int
	Reserved    *big.Int
	Frozen      *big.Int
}

type Nominations struct {
	Targets []PublicKey
}

type StakingLedger struct {
	Stash  PublicKey
	Total  *big.Int
	Active *big.Int
}

type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) next(n int) ([]byte, error) {
	if d.pos+n > len(d.data) {
		return nil, ErrShortData
	}

	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) uint32() (uint32, error) {
	b, err := d.next(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *decoder) uint128() (*big.Int, error) {
	b, err := d.next(16)
	if err != nil {
		return nil, err
	}
	return leToBig(b), nil
}

func (d *decoder) publicKey() (PublicKey, error) {
	var pk PublicKey
	b, err := d.next(PublicKeySize)
	if err != nil {
		return pk, err
	}
	copy(pk[:], b)
	return pk, nil
}

func (d *decoder) compact() (*big.Int, error) {
	first, err := d.next(1)
	if err != nil {
		return nil, err
	}

	switch first[0] & 0x03 {
	case 0:
		return big.NewInt(int64(first[0] >> 2)), nil
	case 1:
		rest, err := d.next(1)
		if err != nil {
			return nil, err
		}
		v := binary.LittleEndian.Uint16([]byte{first[0], rest[0]})
		return big.NewInt(int64(v >> 2)), nil
	case 2:
		rest, err := d.next(3)
		if err != nil {
			return nil, err
		}
		v := binary.LittleEndian.Uint32(append([]byte{first[0]}, rest...))
		return big.NewInt(int64(v >> 2)), nil
	default:
		b, err := d.next(int(first[0]>>2) + 4)
		if err != nil {
			return nil, err
		}
		return leToBig(b), nil
	}
}

func DecodeAccountInfo(data []byte) (*AccountInfo, error) {
	d := &decoder{data: data}
	info := &AccountInfo{}

	var err error
	for _, field := range []*uint32{&info.Nonce, &info.Consumers, &info.Providers, &info.Sufficients} {
		if *field, err = d.uint32(); err != nil {
			return nil, err
		}
	}

	for _, field := range []**big.Int{&info.Free, &info.Reserved, &info.Frozen} {
		if *field, err = d.uint128(); err != nil {
			return nil, err
		}
	}

	return info, nil
}

func DecodeNominations(data []byte) (*Nominations, error) {
	d := &decoder{data: data}

	n, err := d.compact()
	if err != nil {
		return nil, err
	}

	if !n.IsInt64() || n.Int64() > int64(len(data)/PublicKeySize) {
		return nil, ErrShortData
	}

	nominations := &Nominations{Targets: make([]PublicKey, 0, n.Int64())}
	for i := int64(0); i < n.Int64(); i++ {
		pk, err := d.publicKey()
		if err != nil {
			return nil, err
		}
		nominations.Targets = append(nominations.Targets, pk)
	}

	return nominations, nil
}

func DecodeStakingLedger(data []byte) (*StakingLedger, error) {
	d := &decoder{data: data}
	ledger := &StakingLedger{}

	var err error
	if ledger.Stash, err = d.publicKey(); err != nil {
		return nil, err
	}

	if ledger.Total, err = d.compact(); err != nil {
		return nil, err
	}

	if ledger.Active, err = d.compact(); err != nil {
		return nil, err
	}

	return ledger, nil
}

func leToBig(le []byte) *big.Int {
	be := make([]byte, len(le))
	for i := range le {
		be[len(le)-1-i] = le[i]
	}
	return new(big.Int).SetBytes(be)
}
