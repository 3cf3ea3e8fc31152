// Copyright 2026 The space-center Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru"
	b58 "github.com/mr-tron/base58/base58"
	"golang.org/x/crypto/ed25519"
)

// Keypair holds the encoded public key of an account and the seed
// which acts as the equivalent private key. The true private key is
// reconstructed from the seed on demand and never stored.
type Keypair struct {
	PublicKey string
	Seed      string
}

// Seed derivation is pure so derived keypairs are cached. Batched
// payments re-derive the same payer seed once per chunk otherwise.
var keypairCache *lru.Cache

func init() {
	cache, err := lru.New(128)
	if err != nil {
		panic(err)
	}
	keypairCache = cache
}

// RandomKeypair generates a new account keypair with the ed25519
// crypto algorithm. The randomly generated seed is kept as the
// equivalent private key since the true key can always be
// reconstructed from it.
func RandomKeypair() (*Keypair, error) {
	var seed [32]byte
	_, err := io.ReadFull(rand.Reader, seed[:])
	if err != nil {
		return nil, err
	}
	privateKey := ed25519.NewKeyFromSeed(seed[:])
	publicKey := privateKey.Public().(ed25519.PublicKey)

	var pk [32]byte
	copy(pk[:], publicKey)
	acc := &Key{Code: KeyTypeAccountID, Hash: pk}
	sd := &Key{Code: KeyTypeSeed, Hash: seed}

	return &Keypair{
		PublicKey: EncodeKey(acc),
		Seed:      EncodeKey(sd),
	}, nil
}

// KeypairFromSeed reconstructs the keypair of the supplied seed key.
func KeypairFromSeed(seed string) (*Keypair, error) {
	if kp, ok := keypairCache.Get(seed); ok {
		return kp.(*Keypair), nil
	}

	k, err := DecodeKey(seed)
	if err != nil {
		return nil, fmt.Errorf("decode seed key failed: %v", err)
	}
	if k.Code != KeyTypeSeed {
		return nil, errors.New("incorrect seed key type")
	}

	privateKey := ed25519.NewKeyFromSeed(k.Hash[:])
	publicKey := privateKey.Public().(ed25519.PublicKey)

	var pk [32]byte
	copy(pk[:], publicKey)
	acc := &Key{Code: KeyTypeAccountID, Hash: pk}

	kp := &Keypair{
		PublicKey: EncodeKey(acc),
		Seed:      seed,
	}
	keypairCache.Add(seed, kp)

	return kp, nil
}

// Reconstruct the true private key from the seed. It is supposed to
// be used only in places which need to sign data so the authenticity
// can be verified with the corresponding public key.
func getPrivateKey(seed string) (ed25519.PrivateKey, error) {
	if seed == "" {
		return nil, errors.New("empty seed")
	}
	k, err := DecodeKey(seed)
	if err != nil {
		return nil, err
	}
	if k.Code != KeyTypeSeed {
		return nil, errors.New("incorrect seed key type")
	}
	privateKey := ed25519.NewKeyFromSeed(k.Hash[:])
	return privateKey, nil
}

// Sign the data with the provided seed (equivalent private key).
func Sign(seed string, data []byte) (string, error) {
	pk, err := getPrivateKey(seed)
	if err != nil {
		return "", err
	}

	signature := ed25519.Sign(pk, data)
	signStr := b58.Encode(signature)

	return signStr, nil
}

// Verify the data signature with the encoded string representation
// of the public key.
func Verify(publicKey, signature string, data []byte) bool {
	pk, err := DecodeKey(publicKey)
	if err != nil {
		return false
	}
	sn, err := b58.Decode(signature)
	if err != nil {
		return false
	}
	pub := ed25519.PublicKey(pk.Hash[:])
	return ed25519.Verify(pub, data, sn)
}
