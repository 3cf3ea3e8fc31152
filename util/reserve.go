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
	"github.com/shopspring/decimal"
)

// Each subentry of an account (signer or trustline) raises the
// minimum reserve by half a base unit, on top of the two base
// entries every account carries.
var baseReserveUnit = decimal.NewFromFloat(0.5)

// MinBalance computes the minimum balance an account must hold given
// its number of trustlines and signers plus an extra reserve margin.
// The signer count passed in already includes the implicit master-key
// signer the engine always installs.
func MinBalance(trustlineCount, signerCount int, extraReserve decimal.Decimal) decimal.Decimal {
	subentries := int64(trustlineCount) + int64(signerCount)
	networkReserve := decimal.NewFromInt(2 + subentries).Mul(baseReserveUnit)
	return networkReserve.Add(extraReserve)
}
