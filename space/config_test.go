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

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolcalmi/space-center/crypto"
)

func TestNewConfigDefaults(t *testing.T) {
	funding, err := crypto.RandomKeypair()
	require.Nil(t, err)

	v := viper.New()
	v.Set("funding_seed", funding.Seed)

	conf, err := NewConfig(v)
	require.Nil(t, err)
	assert.Equal(t, funding.PublicKey, conf.FundingAccountID)
	assert.Equal(t, funding.PublicKey, conf.MasterKey)
	assert.True(t, conf.UseTestnet)
	assert.Equal(t, TestNetURL, conf.HorizonURL)
	assert.True(t, conf.ExtraReserve.Equal(decimal.NewFromFloat(0.5)))
	assert.Empty(t, conf.InflationDest)
	assert.Empty(t, conf.DefaultSigners)
	assert.Empty(t, conf.DefaultTrustlines)
}

func TestNewConfigOverrides(t *testing.T) {
	funding, err := crypto.RandomKeypair()
	require.Nil(t, err)
	master, err := crypto.RandomKeypair()
	require.Nil(t, err)
	inflation, err := crypto.RandomKeypair()
	require.Nil(t, err)
	signer, err := crypto.RandomKeypair()
	require.Nil(t, err)
	issuer, err := crypto.RandomKeypair()
	require.Nil(t, err)

	v := viper.New()
	v.Set("funding_seed", funding.Seed)
	v.Set("use_testnet", false)
	v.Set("master_key", master.PublicKey)
	v.Set("extra_reserve", "0.75")
	v.Set("inflation_dest", inflation.PublicKey)
	v.Set("default_signers", []interface{}{
		map[string]interface{}{"public_key": signer.PublicKey, "weight": 2},
	})
	v.Set("default_trustlines", []interface{}{
		map[string]interface{}{
			"code":           "USD",
			"issuer":         issuer.PublicKey,
			"must_authorize": true,
		},
	})

	conf, err := NewConfig(v)
	require.Nil(t, err)
	assert.False(t, conf.UseTestnet)
	assert.Equal(t, PublicNetURL, conf.HorizonURL)
	assert.Equal(t, master.PublicKey, conf.MasterKey)
	assert.True(t, conf.ExtraReserve.Equal(decimal.NewFromFloat(0.75)))
	assert.Equal(t, inflation.PublicKey, conf.InflationDest)

	require.Equal(t, 1, len(conf.DefaultSigners))
	assert.Equal(t, signer.PublicKey, conf.DefaultSigners[0].PublicKey)
	assert.Equal(t, uint32(2), conf.DefaultSigners[0].Weight)

	require.Equal(t, 1, len(conf.DefaultTrustlines))
	assert.Equal(t, "USD", conf.DefaultTrustlines[0].Code)
	assert.True(t, conf.DefaultTrustlines[0].MustAuthorize)
}

func TestNewConfigInvalid(t *testing.T) {
	// Missing funding seed.
	_, err := NewConfig(viper.New())
	assert.NotNil(t, err)

	// Malformed funding seed.
	v := viper.New()
	v.Set("funding_seed", "garbage")
	_, err = NewConfig(v)
	assert.NotNil(t, err)

	funding, err := crypto.RandomKeypair()
	require.Nil(t, err)

	// Malformed master key.
	v = viper.New()
	v.Set("funding_seed", funding.Seed)
	v.Set("master_key", "garbage")
	_, err = NewConfig(v)
	assert.NotNil(t, err)

	// Negative extra reserve.
	v = viper.New()
	v.Set("funding_seed", funding.Seed)
	v.Set("extra_reserve", "-1")
	_, err = NewConfig(v)
	assert.NotNil(t, err)

	// Signer without a valid key.
	v = viper.New()
	v.Set("funding_seed", funding.Seed)
	v.Set("default_signers", []interface{}{
		map[string]interface{}{"public_key": "garbage", "weight": 1},
	})
	_, err = NewConfig(v)
	assert.NotNil(t, err)
}
