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

package build

type AssetType uint8

const (
	// The native asset.
	NATIVE AssetType = iota
	// A custom issued asset.
	CUSTOM
)

// Code of the native asset.
const NativeAssetCode = "XLM"

// Asset contains the required information for working with an asset.
type Asset struct {
	AssetType AssetType `json:"asset_type"`
	Code      string    `json:"code,omitempty"`
	Issuer    string    `json:"issuer,omitempty"`
}

// ParseAsset maps an asset code and issuer to an Asset, treating the
// native code specially.
func ParseAsset(code, issuer string) *Asset {
	if code == NativeAssetCode {
		return &Asset{AssetType: NATIVE}
	}
	return &Asset{AssetType: CUSTOM, Code: code, Issuer: issuer}
}

// Account flag bits carried by the set-options operation.
const (
	AuthRequiredFlag  uint32 = 1 << 0
	AuthRevocableFlag uint32 = 1 << 1
)

type OpType string

const (
	OpTypeCreateAccount OpType = "create_account"
	OpTypeSetOptions    OpType = "set_options"
	OpTypeChangeTrust   OpType = "change_trust"
	OpTypeAllowTrust    OpType = "allow_trust"
	OpTypePayment       OpType = "payment"
)

// Op is the tagged union of all the operations an envelope can
// carry. Exactly one of the operation fields is set, matching Type.
type Op struct {
	Type          OpType           `json:"type"`
	CreateAccount *CreateAccountOp `json:"create_account,omitempty"`
	SetOptions    *SetOptionsOp    `json:"set_options,omitempty"`
	ChangeTrust   *ChangeTrustOp   `json:"change_trust,omitempty"`
	AllowTrust    *AllowTrustOp    `json:"allow_trust,omitempty"`
	Payment       *PaymentOp       `json:"payment,omitempty"`
}

// CreateAccountOp funds a new account on the ledger.
type CreateAccountOp struct {
	Destination     string `json:"destination"`
	StartingBalance string `json:"starting_balance"`
}

// SignerKey names an additional signer with its weight.
type SignerKey struct {
	PublicKey string `json:"public_key"`
	Weight    uint32 `json:"weight"`
}

// SetOptionsOp configures thresholds, flags and signers of an
// account. Nil pointer fields are omitted from the wire form so an
// absent field never resets ledger state.
type SetOptionsOp struct {
	Source        string     `json:"source,omitempty"`
	MasterWeight  *uint32    `json:"master_weight,omitempty"`
	LowThreshold  *uint32    `json:"low_threshold,omitempty"`
	MedThreshold  *uint32    `json:"med_threshold,omitempty"`
	HighThreshold *uint32    `json:"high_threshold,omitempty"`
	SetFlags      *uint32    `json:"set_flags,omitempty"`
	InflationDest string     `json:"inflation_dest,omitempty"`
	HomeDomain    string     `json:"home_domain,omitempty"`
	Signer        *SignerKey `json:"signer,omitempty"`
}

// ChangeTrustOp declares the trustor's willingness to hold an asset.
type ChangeTrustOp struct {
	Source string `json:"source,omitempty"`
	Asset  *Asset `json:"asset"`
	Limit  string `json:"limit,omitempty"`
}

// AllowTrustOp authorizes an existing trustline. It is sourced from
// the issuing account, not the trustor.
type AllowTrustOp struct {
	Source    string `json:"source"`
	Trustor   string `json:"trustor"`
	AssetCode string `json:"asset_code"`
	Authorize bool   `json:"authorize"`
}

// PaymentOp moves an amount of an asset between two accounts.
type PaymentOp struct {
	Source      string `json:"source,omitempty"`
	Destination string `json:"destination"`
	Asset       *Asset `json:"asset"`
	Amount      string `json:"amount"`
}
