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

	"github.com/dolcalmi/space-center/build"
	"github.com/dolcalmi/space-center/crypto"
)

// Assets issues new assets: issuer, authorizer and distributor
// accounts plus the initial supply, all in one atomic envelope. A
// partial issuance (a trustline without authorization, or
// authorization without funding) leaves an unusable asset state, so
// everything rides or falls together.
type Assets struct {
	space *Space
}

// AssetOptions tunes an issuance. The zero value issues a freely
// transferable asset; most issuers want MustAuthorize and
// IsRevocable set.
type AssetOptions struct {
	HomeDomain    string
	MustAuthorize bool
	IsRevocable   bool
	// Initial supply paid from the issuer to the distributor.
	// Defaults to 900000000000.
	StartingAssetBalance string
	Memo                 *build.Memo
}

// AssetResult carries the issued asset code and the keypairs of the
// three accounts backing it.
type AssetResult struct {
	AssetCode   string
	Issuer      AccountResult
	Authorizer  AccountResult
	Distributor AccountResult
}

var issuerThresholds = build.Thresholds{
	MasterWeight:  3,
	LowThreshold:  1,
	MedThreshold:  2,
	HighThreshold: 3,
}

const defaultAssetSupply = "900000000000"

// Funding granted to each of the three accounts of an issuance.
const issuanceAccountBalance = "10"

// Create issues an asset. The single envelope creates and configures
// the authorizer, the issuer (with the authorizer installed as a
// low-weight signer when authorization is required) and the
// distributor (with an authorized trustline to the asset), then pays
// the initial supply from issuer to distributor. Signed by the
// de-duplicated union of funding, issuer, authorizer, distributor
// and trustline-authorizer keys.
func (as *Assets) Create(ctx context.Context, assetCode string, opts *AssetOptions) (*AssetResult, error) {
	if assetCode == "" {
		return nil, validationError("empty asset code")
	}
	if opts == nil {
		// Issuances without explicit options get the restrictive
		// defaults of the hosted issuance flow.
		opts = &AssetOptions{MustAuthorize: true, IsRevocable: true}
	}

	supply := opts.StartingAssetBalance
	if supply == "" {
		supply = defaultAssetSupply
	}

	authorizerOpts, issuerOpts, distributorOpts, err := as.accountSpecs(assetCode, opts)
	if err != nil {
		return nil, err
	}

	funding, err := crypto.KeypairFromSeed(as.space.conf.FundingSeed)
	if err != nil {
		return nil, validationError("invalid funding seed: %v", err)
	}
	issuer, err := crypto.KeypairFromSeed(issuerOpts.Seed)
	if err != nil {
		return nil, validationError("invalid issuer seed: %v", err)
	}
	authorizer, err := crypto.KeypairFromSeed(authorizerOpts.Seed)
	if err != nil {
		return nil, validationError("invalid authorizer seed: %v", err)
	}
	distributor, err := crypto.KeypairFromSeed(distributorOpts.Seed)
	if err != nil {
		return nil, validationError("invalid distributor seed: %v", err)
	}

	source, err := as.space.loadAccount(ctx, funding.PublicKey)
	if err != nil {
		return nil, err
	}

	tx := build.NewTx()
	mutators := []build.TxMutator{
		&build.SourceAccount{AccountID: funding.PublicKey},
		&build.SeqNum{SeqNum: source.SeqNum + 1},
		&build.AddMemo{Memo: opts.Memo},
	}
	mutators = append(mutators, accountMutators(authorizerOpts)...)
	mutators = append(mutators, accountMutators(issuerOpts)...)
	mutators = append(mutators, accountMutators(distributorOpts)...)
	mutators = append(mutators, &build.Payment{
		Source:      issuer.PublicKey,
		Destination: distributor.PublicKey,
		Asset:       build.ParseAsset(assetCode, issuer.PublicKey),
		Amount:      supply,
	})
	if err := tx.Add(mutators...); err != nil {
		return nil, validationError("assemble issuance envelope failed: %v", err)
	}

	signers := NewSignerSet(funding, issuer, authorizer, distributor)
	for _, trustlines := range [][]build.Trustline{
		authorizerOpts.Trustlines, issuerOpts.Trustlines, distributorOpts.Trustlines,
	} {
		if err := signers.AddTrustlineAuthorizers(trustlines); err != nil {
			return nil, validationError("resolve trustline authorizers failed: %v", err)
		}
	}

	if _, err := as.space.buildAndSubmit(ctx, tx, signers); err != nil {
		return nil, err
	}

	return &AssetResult{
		AssetCode:   assetCode,
		Issuer:      AccountResult{PublicKey: issuerOpts.PublicKey, Seed: issuerOpts.Seed},
		Authorizer:  AccountResult{PublicKey: authorizerOpts.PublicKey, Seed: authorizerOpts.Seed},
		Distributor: AccountResult{PublicKey: distributorOpts.PublicKey, Seed: distributorOpts.Seed},
	}, nil
}

// accountSpecs derives the three account specifications of an
// issuance. The authorizer must be resolved first, the issuer
// installs it as a signer and the distributor's trustline names its
// seed.
func (as *Assets) accountSpecs(assetCode string, opts *AssetOptions) (authorizer, issuer, distributor *AccountOptions, err error) {
	authorizer, err = as.space.Accounts.applyDefaults(&AccountOptions{
		StartingBalance: issuanceAccountBalance,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	th := issuerThresholds
	issuerSpec := &AccountOptions{
		StartingBalance: issuanceAccountBalance,
		Thresholds:      &th,
		HomeDomain:      opts.HomeDomain,
		MustAuthorize:   opts.MustAuthorize,
		IsRevocable:     opts.IsRevocable,
	}
	if opts.MustAuthorize {
		issuerSpec.Signers = []build.Signer{
			{PublicKey: authorizer.PublicKey, Weight: issuerThresholds.LowThreshold},
		}
	}
	issuer, err = as.space.Accounts.applyDefaults(issuerSpec)
	if err != nil {
		return nil, nil, nil, err
	}

	distributor, err = as.space.Accounts.applyDefaults(&AccountOptions{
		StartingBalance: issuanceAccountBalance,
		Trustlines: []build.Trustline{
			{
				Code:          assetCode,
				Issuer:        issuer.PublicKey,
				MustAuthorize: opts.MustAuthorize,
				Authorizer:    authorizer.Seed,
			},
		},
	})
	if err != nil {
		return nil, nil, nil, err
	}

	return authorizer, issuer, distributor, nil
}
