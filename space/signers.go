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

package space

import (
	mapset "github.com/deckarep/golang-set"

	"github.com/dolcalmi/space-center/build"
	"github.com/dolcalmi/space-center/crypto"
)

// SignerSet resolves the minimal set of keypairs needed to authorize
// an envelope. Keys are de-duplicated by seed, not by public key:
// when the funding account doubles as a trustline authorizer only
// one signing pass happens. Insertion order is kept so signing is
// deterministic.
type SignerSet struct {
	seen     mapset.Set
	keypairs []*crypto.Keypair
}

func NewSignerSet(keypairs ...*crypto.Keypair) *SignerSet {
	s := &SignerSet{seen: mapset.NewSet()}
	for _, kp := range keypairs {
		s.Add(kp)
	}
	return s
}

// Add inserts a keypair unless its seed is already present.
func (s *SignerSet) Add(kp *crypto.Keypair) {
	if kp == nil {
		return
	}
	if s.seen.Add(kp.Seed) {
		s.keypairs = append(s.keypairs, kp)
	}
}

// AddSeed derives a keypair from the seed and inserts it.
func (s *SignerSet) AddSeed(seed string) error {
	kp, err := crypto.KeypairFromSeed(seed)
	if err != nil {
		return err
	}
	s.Add(kp)
	return nil
}

// AddTrustlineAuthorizers inserts the authorizer of every trustline
// whose authorization op will need a signature. A trustline that
// requires authorization but names no authorizer is left alone, the
// ledger surfaces that as an authorization failure on submit.
func (s *SignerSet) AddTrustlineAuthorizers(trustlines []build.Trustline) error {
	for _, tl := range trustlines {
		if tl.MustAuthorize && tl.Authorizer != "" {
			if err := s.AddSeed(tl.Authorizer); err != nil {
				return err
			}
		}
	}
	return nil
}

// Keypairs returns the resolved keypairs in insertion order.
func (s *SignerSet) Keypairs() []*crypto.Keypair {
	return s.keypairs
}

func (s *SignerSet) Len() int {
	return len(s.keypairs)
}
