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

	"github.com/shopspring/decimal"

	"github.com/dolcalmi/space-center/amount"
	"github.com/dolcalmi/space-center/build"
	"github.com/dolcalmi/space-center/crypto"
	"github.com/dolcalmi/space-center/util"
)

// Accounts provisions accounts with their signers, trustlines,
// thresholds and flags.
type Accounts struct {
	space *Space
}

// AccountOptions is the caller-facing specification of an account to
// be created or configured. Every field has a documented default,
// applied by the engine before assembly.
type AccountOptions struct {
	// Seed of the account. A fresh random keypair is generated when
	// empty. The engine never keeps the seed beyond the call.
	Seed string
	// Public key of the account, derived from Seed.
	PublicKey string
	// The account already exists on the ledger, skip the
	// create-account op and only configure it.
	Exists bool
	// Configure the account in a second envelope sourced from and
	// signed by the account itself. Mandatory whenever the
	// configuring party differs from the creator: the account
	// cannot sign before its creation is confirmed.
	SelfConfigure bool
	// Initial funding in native units, raised to the minimum
	// reserve when too low. Defaults to 1.
	StartingBalance string
	// Additional signers, installed in listed order. The master
	// key is not listed here.
	Signers []build.Signer
	// Trustlines to establish, in listed order.
	Trustlines []build.Trustline
	// Signing thresholds. Defaults to {1, 1, 1, 2}.
	Thresholds *build.Thresholds
	// Require issuer authorization for holders of assets issued by
	// this account.
	MustAuthorize bool
	// Allow revoking authorization.
	IsRevocable bool
	// Inflation destination. Defaults to the configured one.
	InflationDest string
	HomeDomain    string
	// Master key installed as a signer at high-threshold weight.
	// Defaults to the configured master key.
	MasterKey string
	Memo      *build.Memo
}

// AccountResult is the keypair of the provisioned account.
type AccountResult struct {
	PublicKey string
	Seed      string
}

var defaultThresholds = build.Thresholds{
	MasterWeight:  1,
	LowThreshold:  1,
	MedThreshold:  1,
	HighThreshold: 2,
}

// Create provisions one account: merge the options over defaults,
// raise the starting balance to the minimum reserve, assemble the
// envelope in the mandated order, resolve signers and submit.
func (a *Accounts) Create(ctx context.Context, opts *AccountOptions) (*AccountResult, error) {
	opts, err := a.applyDefaults(opts)
	if err != nil {
		return nil, err
	}

	if opts.SelfConfigure && !opts.Exists {
		return a.createThenConfigure(ctx, opts)
	}

	funding, err := crypto.KeypairFromSeed(a.space.conf.FundingSeed)
	if err != nil {
		return nil, validationError("invalid funding seed: %v", err)
	}
	account, err := crypto.KeypairFromSeed(opts.Seed)
	if err != nil {
		return nil, validationError("invalid account seed: %v", err)
	}

	source, err := a.space.loadAccount(ctx, funding.PublicKey)
	if err != nil {
		return nil, err
	}

	tx := build.NewTx()
	mutators := []build.TxMutator{
		&build.SourceAccount{AccountID: funding.PublicKey},
		&build.SeqNum{SeqNum: source.SeqNum + 1},
		&build.AddMemo{Memo: opts.Memo},
	}
	mutators = append(mutators, accountMutators(opts)...)
	if err := tx.Add(mutators...); err != nil {
		return nil, validationError("assemble envelope failed: %v", err)
	}

	signers := NewSignerSet(funding, account)
	if err := signers.AddTrustlineAuthorizers(opts.Trustlines); err != nil {
		return nil, validationError("resolve trustline authorizers failed: %v", err)
	}

	if _, err := a.space.buildAndSubmit(ctx, tx, signers); err != nil {
		return nil, err
	}

	return &AccountResult{PublicKey: opts.PublicKey, Seed: opts.Seed}, nil
}

// createThenConfigure provisions in two envelopes: a minimal create
// signed by the funder, then the configuration sourced from the new
// account itself. The second envelope can only be built after the
// first is confirmed, the account has no sequence number before
// that.
func (a *Accounts) createThenConfigure(ctx context.Context, opts *AccountOptions) (*AccountResult, error) {
	funding, err := crypto.KeypairFromSeed(a.space.conf.FundingSeed)
	if err != nil {
		return nil, validationError("invalid funding seed: %v", err)
	}
	account, err := crypto.KeypairFromSeed(opts.Seed)
	if err != nil {
		return nil, validationError("invalid account seed: %v", err)
	}

	source, err := a.space.loadAccount(ctx, funding.PublicKey)
	if err != nil {
		return nil, err
	}

	createTx := build.NewTx()
	err = createTx.Add(
		&build.SourceAccount{AccountID: funding.PublicKey},
		&build.SeqNum{SeqNum: source.SeqNum + 1},
		&build.AddMemo{Memo: opts.Memo},
		&build.CreateAccount{Destination: opts.PublicKey, StartingBalance: opts.StartingBalance},
	)
	if err != nil {
		return nil, validationError("assemble create envelope failed: %v", err)
	}

	if _, err := a.space.buildAndSubmit(ctx, createTx, NewSignerSet(funding)); err != nil {
		return nil, err
	}

	created, err := a.space.loadAccount(ctx, opts.PublicKey)
	if err != nil {
		return nil, err
	}

	configureTx := build.NewTx()
	mutators := []build.TxMutator{
		&build.SourceAccount{AccountID: opts.PublicKey},
		&build.SeqNum{SeqNum: created.SeqNum + 1},
	}
	mutators = append(mutators, configureMutators(opts)...)
	if err := configureTx.Add(mutators...); err != nil {
		return nil, validationError("assemble configure envelope failed: %v", err)
	}

	signers := NewSignerSet(account)
	if err := signers.AddTrustlineAuthorizers(opts.Trustlines); err != nil {
		return nil, validationError("resolve trustline authorizers failed: %v", err)
	}

	if _, err := a.space.buildAndSubmit(ctx, configureTx, signers); err != nil {
		return nil, err
	}

	return &AccountResult{PublicKey: opts.PublicKey, Seed: opts.Seed}, nil
}

// applyDefaults merges the caller options over the documented
// defaults and raises the starting balance to the minimum reserve.
// The balance is never lowered.
func (a *Accounts) applyDefaults(opts *AccountOptions) (*AccountOptions, error) {
	merged := AccountOptions{}
	if opts != nil {
		merged = *opts
	}

	if merged.Seed == "" {
		kp, err := crypto.RandomKeypair()
		if err != nil {
			return nil, validationError("generate keypair failed: %v", err)
		}
		merged.Seed = kp.Seed
		merged.PublicKey = kp.PublicKey
	} else {
		kp, err := crypto.KeypairFromSeed(merged.Seed)
		if err != nil {
			return nil, validationError("invalid account seed: %v", err)
		}
		merged.PublicKey = kp.PublicKey
	}

	if merged.Thresholds == nil {
		th := defaultThresholds
		merged.Thresholds = &th
	}
	if merged.Signers == nil {
		merged.Signers = a.space.conf.DefaultSigners
	}
	if merged.Trustlines == nil {
		merged.Trustlines = a.space.conf.DefaultTrustlines
	}
	if merged.InflationDest == "" {
		merged.InflationDest = a.space.conf.InflationDest
	}
	if merged.MasterKey == "" {
		merged.MasterKey = a.space.conf.MasterKey
	}
	if merged.StartingBalance == "" {
		merged.StartingBalance = "1"
	}

	balance, err := amount.Parse(merged.StartingBalance)
	if err != nil {
		return nil, validationError("invalid starting balance: %v", err)
	}

	minBalance := a.minBalance(&merged)
	if balance.LessThan(minBalance) {
		merged.StartingBalance = amount.String(minBalance)
	}

	return &merged, nil
}

// minBalance computes the reserve of the account described by the
// options. The +1 accounts for the master-key signer the engine
// always installs.
func (a *Accounts) minBalance(opts *AccountOptions) decimal.Decimal {
	return util.MinBalance(len(opts.Trustlines), len(opts.Signers)+1, a.space.conf.ExtraReserve)
}

// accountMutators lists the mutators provisioning one account, in
// the mandated order: create-account, signers, trustlines with
// authorization, options. The options op always comes last, raising
// thresholds earlier would demand signature weight the
// not-yet-installed signers cannot provide.
func accountMutators(opts *AccountOptions) []build.TxMutator {
	var mutators []build.TxMutator
	if !opts.Exists {
		mutators = append(mutators, &build.CreateAccount{
			Destination:     opts.PublicKey,
			StartingBalance: opts.StartingBalance,
		})
	}
	mutators = append(mutators, configureMutators(opts)...)
	return mutators
}

// configureMutators lists the configuration mutators only, used on
// their own by the split provisioning path.
func configureMutators(opts *AccountOptions) []build.TxMutator {
	var mutators []build.TxMutator
	if len(opts.Signers) > 0 {
		mutators = append(mutators, &build.AddSigners{
			Account: opts.PublicKey,
			Signers: opts.Signers,
		})
	}
	if len(opts.Trustlines) > 0 {
		mutators = append(mutators, &build.AddTrustlines{
			Account:    opts.PublicKey,
			Trustlines: opts.Trustlines,
		})
	}
	mutators = append(mutators, &build.AccountOptions{
		Account:       opts.PublicKey,
		Thresholds:    *opts.Thresholds,
		MustAuthorize: opts.MustAuthorize,
		IsRevocable:   opts.IsRevocable,
		InflationDest: opts.InflationDest,
		HomeDomain:    opts.HomeDomain,
		MasterKey:     opts.MasterKey,
	})
	return mutators
}
