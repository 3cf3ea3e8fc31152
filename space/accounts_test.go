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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolcalmi/space-center/build"
	"github.com/dolcalmi/space-center/crypto"
)

func TestAccountCreateDefaults(t *testing.T) {
	s, fc, funding := newTestSpace(t)

	// A bare spec raises the requested balance of 1 to the minimum
	// of 2.0 (master-key signer plus 0.5 extra reserve).
	result, err := s.Accounts.Create(context.Background(), nil)
	require.Nil(t, err)
	assert.NotEmpty(t, result.PublicKey)
	assert.NotEmpty(t, result.Seed)

	require.Equal(t, 1, len(fc.submissions))
	e := fc.submissions[0].envelope
	assert.Equal(t, funding.PublicKey, e.SourceAccount)
	assert.Equal(t, uint64(101), e.SeqNum)

	// create-account then exactly one options op.
	require.Equal(t, []build.OpType{build.OpTypeCreateAccount, build.OpTypeSetOptions}, opTypes(e))
	assert.Equal(t, result.PublicKey, e.OpList[0].CreateAccount.Destination)
	assert.Equal(t, "2", e.OpList[0].CreateAccount.StartingBalance)

	options := e.OpList[1].SetOptions
	assert.Equal(t, result.PublicKey, options.Source)
	assert.Equal(t, uint32(1), *options.MasterWeight)
	assert.Equal(t, uint32(2), *options.HighThreshold)
	assert.Nil(t, options.SetFlags)
	// The configured master key is installed at high-threshold
	// weight.
	assert.Equal(t, funding.PublicKey, options.Signer.PublicKey)
	assert.Equal(t, uint32(2), options.Signer.Weight)

	// Signed by funder and the new account.
	assert.Equal(t, 2, len(fc.submissions[0].signed.Signatures))
}

func TestAccountCreateFullSpec(t *testing.T) {
	s, fc, _ := newTestSpace(t)

	signer, err := crypto.RandomKeypair()
	require.Nil(t, err)
	issuer, err := crypto.RandomKeypair()
	require.Nil(t, err)
	authorizer, err := crypto.RandomKeypair()
	require.Nil(t, err)

	result, err := s.Accounts.Create(context.Background(), &AccountOptions{
		StartingBalance: "50",
		Signers:         []build.Signer{{PublicKey: signer.PublicKey, Weight: 1}},
		Trustlines: []build.Trustline{
			{Code: "USD", Issuer: issuer.PublicKey, MustAuthorize: true, Authorizer: authorizer.Seed},
		},
		MustAuthorize: true,
		Memo:          build.TextMemo("provisioned"),
	})
	require.Nil(t, err)

	require.Equal(t, 1, len(fc.submissions))
	e := fc.submissions[0].envelope

	// The mandated order: create-account, signers, trustlines with
	// authorization, then the single options op.
	require.Equal(t, []build.OpType{
		build.OpTypeCreateAccount,
		build.OpTypeSetOptions,
		build.OpTypeChangeTrust,
		build.OpTypeAllowTrust,
		build.OpTypeSetOptions,
	}, opTypes(e))

	assert.Equal(t, build.MemoText, e.Memo.Type)
	assert.Equal(t, signer.PublicKey, e.OpList[1].SetOptions.Signer.PublicKey)
	assert.Equal(t, issuer.PublicKey, e.OpList[3].AllowTrust.Source)
	assert.Equal(t, result.PublicKey, e.OpList[3].AllowTrust.Trustor)
	assert.Equal(t, build.AuthRequiredFlag, *e.OpList[4].SetOptions.SetFlags)

	// Funder, new account and the trustline authorizer sign.
	assert.Equal(t, 3, len(fc.submissions[0].signed.Signatures))
}

func TestAccountCreateExists(t *testing.T) {
	s, fc, _ := newTestSpace(t)

	account, err := crypto.RandomKeypair()
	require.Nil(t, err)
	fc.addAccount(account.PublicKey, 5)

	_, err = s.Accounts.Create(context.Background(), &AccountOptions{
		Seed:   account.Seed,
		Exists: true,
	})
	require.Nil(t, err)

	// No create-account op for an account that already exists.
	e := fc.submissions[0].envelope
	assert.Equal(t, []build.OpType{build.OpTypeSetOptions}, opTypes(e))
}

func TestAccountCreateSelfConfigure(t *testing.T) {
	s, fc, funding := newTestSpace(t)

	signer, err := crypto.RandomKeypair()
	require.Nil(t, err)

	result, err := s.Accounts.Create(context.Background(), &AccountOptions{
		SelfConfigure: true,
		Signers:       []build.Signer{{PublicKey: signer.PublicKey, Weight: 1}},
	})
	require.Nil(t, err)

	// Two envelopes: the funder-signed create, then the configure
	// envelope sourced from and signed by the new account.
	require.Equal(t, 2, len(fc.submissions))

	create := fc.submissions[0]
	assert.Equal(t, funding.PublicKey, create.envelope.SourceAccount)
	assert.Equal(t, []build.OpType{build.OpTypeCreateAccount}, opTypes(create.envelope))
	assert.Equal(t, 1, len(create.signed.Signatures))
	assert.Equal(t, funding.PublicKey, create.signed.Signatures[0].Signer)

	configure := fc.submissions[1]
	assert.Equal(t, result.PublicKey, configure.envelope.SourceAccount)
	assert.Equal(t, uint64(1), configure.envelope.SeqNum)
	assert.Equal(t, []build.OpType{build.OpTypeSetOptions, build.OpTypeSetOptions}, opTypes(configure.envelope))
	assert.Equal(t, 1, len(configure.signed.Signatures))
	assert.Equal(t, result.PublicKey, configure.signed.Signatures[0].Signer)
}

func TestAccountCreateFundingMissing(t *testing.T) {
	s, fc, funding := newTestSpace(t)
	delete(fc.accounts, funding.PublicKey)

	_, err := s.Accounts.Create(context.Background(), nil)
	require.NotNil(t, err)

	spaceErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindAccountNotFound, spaceErr.Kind)
	assert.Equal(t, 0, len(fc.submissions))
}

func TestAccountCreateInvalidSeed(t *testing.T) {
	s, fc, _ := newTestSpace(t)

	_, err := s.Accounts.Create(context.Background(), &AccountOptions{Seed: "garbage"})
	require.NotNil(t, err)

	spaceErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindValidation, spaceErr.Kind)
	// Validation fails before any network call.
	assert.Equal(t, 0, len(fc.submissions))
}

func TestAccountStartingBalanceKept(t *testing.T) {
	s, fc, _ := newTestSpace(t)

	// A sufficient caller-supplied balance is never lowered.
	_, err := s.Accounts.Create(context.Background(), &AccountOptions{StartingBalance: "25"})
	require.Nil(t, err)
	assert.Equal(t, "25", fc.submissions[0].envelope.OpList[0].CreateAccount.StartingBalance)
}
