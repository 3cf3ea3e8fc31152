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

package util

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMinBalance(t *testing.T) {
	// An account with no subentries besides the master key and an
	// extra reserve of 0.5 needs 2.0 base units.
	mb := MinBalance(0, 1, decimal.NewFromFloat(0.5))
	assert.True(t, mb.Equal(decimal.NewFromFloat(2.0)), "got %s", mb)

	// No extra reserve.
	mb = MinBalance(0, 1, decimal.Zero)
	assert.True(t, mb.Equal(decimal.NewFromFloat(1.5)), "got %s", mb)

	// Each trustline and signer adds half a base unit.
	mb = MinBalance(3, 2, decimal.Zero)
	assert.True(t, mb.Equal(decimal.NewFromFloat(3.5)), "got %s", mb)
}

func TestMinBalanceMonotonic(t *testing.T) {
	extra := decimal.NewFromFloat(0.1)
	for trust := 0; trust < 5; trust++ {
		for signer := 0; signer < 5; signer++ {
			mb := MinBalance(trust, signer, extra)
			assert.True(t, MinBalance(trust+1, signer, extra).GreaterThan(mb))
			assert.True(t, MinBalance(trust, signer+1, extra).GreaterThan(mb))
			assert.True(t, MinBalance(trust, signer, extra.Add(decimal.NewFromInt(1))).GreaterThan(mb))
		}
	}
}
