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
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/dolcalmi/space-center/build"
	"github.com/dolcalmi/space-center/crypto"
)

// Horizon gateway endpoints.
const (
	PublicNetURL = "https://horizon.stellar.org"
	TestNetURL   = "https://horizon-testnet.stellar.org"
)

// DefaultExtraReserve is the margin added on top of the network
// reserve when no explicit extra reserve is configured.
var DefaultExtraReserve = decimal.NewFromFloat(0.5)

// Config is the immutable process-wide configuration of the engine.
// It is constructed once and read thereafter; components never
// mutate it.
type Config struct {
	// Seed of the funding account which pays for account creation.
	FundingSeed string
	// Public key of the funding account, derived from the seed.
	FundingAccountID string
	// Master key installed on every provisioned account. Defaults
	// to the funding account's public key.
	MasterKey string
	// Seed of the process-wide distributor account, if any.
	DistributorSeed string
	// Whether to talk to the test network.
	UseTestnet bool
	// Horizon gateway endpoint, derived from UseTestnet unless set.
	HorizonURL string
	// Extra reserve margin added to every minimum balance.
	ExtraReserve decimal.Decimal
	// Inflation destination installed on provisioned accounts.
	InflationDest string
	// Signers installed on provisioned accounts which do not name
	// their own.
	DefaultSigners []build.Signer
	// Trustlines established on provisioned accounts which do not
	// name their own.
	DefaultTrustlines []build.Trustline
}

// NewConfig builds a Config from viper-sourced settings, validating
// every field and filling documented defaults. Unknown or malformed
// values are rejected here so the engine never sees them.
func NewConfig(v *viper.Viper) (*Config, error) {
	fundingSeed := v.GetString("funding_seed")
	if fundingSeed == "" {
		return nil, errors.New("funding seed is missing")
	}
	funding, err := crypto.KeypairFromSeed(fundingSeed)
	if err != nil {
		return nil, fmt.Errorf("invalid funding seed: %v", err)
	}

	useTestnet := true
	if v.IsSet("use_testnet") {
		useTestnet = v.GetBool("use_testnet")
	}

	horizonURL := v.GetString("horizon_url")
	if horizonURL == "" {
		horizonURL = TestNetURL
		if !useTestnet {
			horizonURL = PublicNetURL
		}
	}

	masterKey := v.GetString("master_key")
	if masterKey == "" {
		masterKey = funding.PublicKey
	} else if !crypto.IsValidAccountKey(masterKey) {
		return nil, errors.New("invalid master key")
	}

	distributorSeed := v.GetString("distributor_seed")
	if distributorSeed != "" {
		if _, err := crypto.KeypairFromSeed(distributorSeed); err != nil {
			return nil, fmt.Errorf("invalid distributor seed: %v", err)
		}
	}

	extraReserve := DefaultExtraReserve
	if v.IsSet("extra_reserve") {
		extraReserve, err = decimal.NewFromString(v.GetString("extra_reserve"))
		if err != nil {
			return nil, fmt.Errorf("invalid extra reserve: %v", err)
		}
		if extraReserve.IsNegative() {
			return nil, errors.New("negative extra reserve")
		}
	}

	inflationDest := v.GetString("inflation_dest")
	if inflationDest != "" && !crypto.IsValidAccountKey(inflationDest) {
		return nil, errors.New("invalid inflation destination key")
	}

	signers, err := parseSigners(v.Get("default_signers"))
	if err != nil {
		return nil, fmt.Errorf("parse default signers failed: %v", err)
	}

	trustlines, err := parseTrustlines(v.Get("default_trustlines"))
	if err != nil {
		return nil, fmt.Errorf("parse default trustlines failed: %v", err)
	}

	c := Config{
		FundingSeed:       fundingSeed,
		FundingAccountID:  funding.PublicKey,
		MasterKey:         masterKey,
		DistributorSeed:   distributorSeed,
		UseTestnet:        useTestnet,
		HorizonURL:        horizonURL,
		ExtraReserve:      extraReserve,
		InflationDest:     inflationDest,
		DefaultSigners:    signers,
		DefaultTrustlines: trustlines,
	}

	return &c, nil
}

func parseSigners(raw interface{}) ([]build.Signer, error) {
	if raw == nil {
		return nil, nil
	}

	items, ok := raw.([]interface{})
	if !ok {
		return nil, errors.New("default signers is not a list")
	}

	var signers []build.Signer
	for _, item := range items {
		fields, err := toStringMap(item)
		if err != nil {
			return nil, err
		}
		publicKey, _ := fields["public_key"].(string)
		if !crypto.IsValidAccountKey(publicKey) {
			return nil, fmt.Errorf("invalid signer key: %s", publicKey)
		}
		weight, err := toUint32(fields["weight"])
		if err != nil {
			return nil, fmt.Errorf("invalid signer weight: %v", err)
		}
		signers = append(signers, build.Signer{PublicKey: publicKey, Weight: weight})
	}

	return signers, nil
}

func parseTrustlines(raw interface{}) ([]build.Trustline, error) {
	if raw == nil {
		return nil, nil
	}

	items, ok := raw.([]interface{})
	if !ok {
		return nil, errors.New("default trustlines is not a list")
	}

	var trustlines []build.Trustline
	for _, item := range items {
		fields, err := toStringMap(item)
		if err != nil {
			return nil, err
		}
		code, _ := fields["code"].(string)
		if code == "" {
			return nil, errors.New("empty trustline asset code")
		}
		issuer, _ := fields["issuer"].(string)
		if !crypto.IsValidAccountKey(issuer) {
			return nil, fmt.Errorf("invalid trustline issuer: %s", issuer)
		}
		limit, _ := fields["limit"].(string)
		mustAuthorize, _ := fields["must_authorize"].(bool)
		authorizer, _ := fields["authorizer"].(string)
		trustlines = append(trustlines, build.Trustline{
			Code:          code,
			Issuer:        issuer,
			Limit:         limit,
			MustAuthorize: mustAuthorize,
			Authorizer:    authorizer,
		})
	}

	return trustlines, nil
}

func toStringMap(item interface{}) (map[string]interface{}, error) {
	switch m := item.(type) {
	case map[string]interface{}:
		return m, nil
	case map[interface{}]interface{}:
		fields := make(map[string]interface{})
		for k, v := range m {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string config key: %v", k)
			}
			fields[key] = v
		}
		return fields, nil
	}
	return nil, fmt.Errorf("config entry is not a map: %v", item)
}

func toUint32(raw interface{}) (uint32, error) {
	switch n := raw.(type) {
	case int:
		if n < 0 {
			return 0, errors.New("negative value")
		}
		return uint32(n), nil
	case int64:
		if n < 0 {
			return 0, errors.New("negative value")
		}
		return uint32(n), nil
	case float64:
		if n < 0 {
			return 0, errors.New("negative value")
		}
		return uint32(n), nil
	}
	return 0, fmt.Errorf("unsupported numeric value: %v", raw)
}
