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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dolcalmi/space-center/build"
	"github.com/dolcalmi/space-center/crypto"
)

func TestSignerSetDeduplicates(t *testing.T) {
	a, err := crypto.RandomKeypair()
	assert.Nil(t, err)
	b, err := crypto.RandomKeypair()
	assert.Nil(t, err)

	s := NewSignerSet(a, b, a)
	assert.Equal(t, 2, s.Len())

	// Adding again is idempotent.
	s.Add(a)
	s.Add(b)
	assert.Equal(t, 2, s.Len())

	// Insertion order is kept.
	kps := s.Keypairs()
	assert.Equal(t, a.Seed, kps[0].Seed)
	assert.Equal(t, b.Seed, kps[1].Seed)
}

func TestSignerSetTrustlineAuthorizers(t *testing.T) {
	funding, err := crypto.RandomKeypair()
	assert.Nil(t, err)
	issuer, err := crypto.RandomKeypair()
	assert.Nil(t, err)
	authorizer, err := crypto.RandomKeypair()
	assert.Nil(t, err)

	// The funding account doubles as an authorizer: one signing
	// pass for that key, not two.
	s := NewSignerSet(funding)
	err = s.AddTrustlineAuthorizers([]build.Trustline{
		{Code: "USD", Issuer: issuer.PublicKey, MustAuthorize: true, Authorizer: funding.Seed},
		{Code: "EUR", Issuer: issuer.PublicKey, MustAuthorize: true, Authorizer: authorizer.Seed},
		// Authorization required but no authorizer named: left for
		// the ledger to reject, not resolved here.
		{Code: "GBP", Issuer: issuer.PublicKey, MustAuthorize: true},
		// No authorization required.
		{Code: "JPY", Issuer: issuer.PublicKey, Authorizer: authorizer.Seed},
	})
	assert.Nil(t, err)
	assert.Equal(t, 2, s.Len())

	err = s.AddTrustlineAuthorizers([]build.Trustline{
		{Code: "USD", Issuer: issuer.PublicKey, MustAuthorize: true, Authorizer: "garbage"},
	})
	assert.NotNil(t, err)
}
