package crypto

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"math/big"

	"captoken/common"
	"captoken/common/ahash"
)

const defaultKeyPackType = uint8(1)
const DefaultKeyPackVersion = uint8(1)

func curve() elliptic.Curve {
	return elliptic.P256()
}

func GenPrvKey() (*ecdsa.PrivateKey, error) {
	return ecdsa.GenerateKey(curve(), rand.Reader)
}

func MustGenPrvKey() *ecdsa.PrivateKey {
	key, err := GenPrvKey()
	if err != nil {
		panic(err)
	}
	return key
}

func PubKeyEncode(p ecdsa.PublicKey) []byte {
	if p.Curve == nil || p.X == nil || p.Y == nil {
		return nil
	}
	xbs := p.X.Bytes()
	ybs := p.Y.Bytes()
	buf := make([]byte, len(xbs)+len(ybs))
	copy(buf, append(xbs, ybs...))
	return buf
}

func Checksum(payload []byte) []byte {
	first := ahash.SHA256(payload)
	second := ahash.SHA256(first)
	return second[:common.AddrCheckSumLen]
}

func VerifyAddress(addr common.Address) bool {
	want := Checksum(addr.Payload())
	got := addr.Checksum()
	return bytes.Equal(want, got)
}

func DefaultPubKey2Addr(p ecdsa.PublicKey) common.Address {
	return PubKey2Addr(common.DefaultAddressVersion, p)
}

func PubKey2Addr(version uint8, p ecdsa.PublicKey) common.Address {
	pubEnc := PubKeyEncode(p)
	pubHash256 := ahash.SHA256(pubEnc)
	pubHash := ahash.Ripemd160(pubHash256)
	payload := append([]byte{version}, pubHash...)
	cs := Checksum(payload)
	full := append(payload, cs...)
	return common.Bytes2Address(full)
}

func EncodePrivateKey(version uint8, key *ecdsa.PrivateKey) []byte {
	dbytes := key.D.Bytes()
	curveOrder := curve().Params().N
	privateKey := make([]byte, (curveOrder.BitLen()+7)/8)
	for len(dbytes) > len(privateKey) {
		if dbytes[0] != 0 {
			return nil
		}
		dbytes = dbytes[1:]
	}
	copy(privateKey[len(privateKey)-len(dbytes):], dbytes)
	buf := append([]byte{version, defaultKeyPackType}, privateKey...)
	return buf
}

func DefaultEncodePrivateKey(key *ecdsa.PrivateKey) []byte {
	return EncodePrivateKey(DefaultKeyPackVersion, key)
}

func DecodePrivateKey(bs []byte) (uint8, *ecdsa.PrivateKey, error) {
	if len(bs) <= 2 {
		return 0, nil, errors.New("unknown private key version")
	}
	version := bs[0]
	keytype := bs[1]
	payload := bs[2:]
	if keytype != defaultKeyPackType {
		return 0, nil, errors.New("unknown private key encrypt type")
	}
	c := curve()
	curveOrder := c.Params().N
	k := new(big.Int).SetBytes(payload)
	if k.Cmp(curveOrder) >= 0 {
		return 0, nil, errors.New("invalid elliptic curve private key value")
	}
	if k.Sign() <= 0 {
		return 0, nil, errors.New("invalid private key, zero or negative")
	}
	priv := new(ecdsa.PrivateKey)
	priv.Curve = c
	priv.D = k
	privateKey := make([]byte, (curveOrder.BitLen()+7)/8)
	for len(payload) > len(privateKey) {
		if payload[0] != 0 {
			return 0, nil, errors.New("invalid private key length")
		}
		payload = payload[1:]
	}
	copy(privateKey[len(privateKey)-len(payload):], payload)
	priv.X, priv.Y = c.ScalarBaseMult(privateKey)
	if priv.X == nil {
		return 0, nil, errors.New("invalid private key")
	}
	return version, priv, nil
}
