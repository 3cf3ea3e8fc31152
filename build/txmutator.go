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

import (
	"errors"
	"fmt"

	"github.com/dolcalmi/space-center/amount"
	"github.com/dolcalmi/space-center/crypto"
)

var (
	ErrNilEnvelope = errors.New("envelope is nil")
)

// TxMutator defines the method which all the transaction mutators
// should implement.
type TxMutator interface {
	Mutate(e *Envelope) error
}

// SourceAccount sets the source account of the envelope. The source
// account pays the fee and provides the sequence number.
type SourceAccount struct {
	AccountID string
}

func (s *SourceAccount) validate() error {
	if s.AccountID == "" {
		return errors.New("empty account id")
	}
	if !crypto.IsValidAccountKey(s.AccountID) {
		return errors.New("invalid account key")
	}
	return nil
}

func (s *SourceAccount) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilEnvelope
	}
	if err := s.validate(); err != nil {
		return err
	}
	e.SourceAccount = s.AccountID
	return nil
}

// SeqNum sets the sequence number consumed by the envelope.
type SeqNum struct {
	SeqNum uint64
}

func (s *SeqNum) validate() error {
	if s.SeqNum == 0 {
		return errors.New("seqnum is zero")
	}
	return nil
}

func (s *SeqNum) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilEnvelope
	}
	if err := s.validate(); err != nil {
		return err
	}
	e.SeqNum = s.SeqNum
	return nil
}

// AddMemo attaches a memo to the envelope. A nil memo mutates
// nothing so callers can pass an optional memo through unchecked.
// Only one memo is allowed per envelope.
type AddMemo struct {
	Memo *Memo
}

func (m *AddMemo) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilEnvelope
	}
	if m.Memo == nil {
		return nil
	}
	if e.Memo != nil {
		return errors.New("memo is already set")
	}
	if err := m.Memo.validate(); err != nil {
		return err
	}
	e.Memo = m.Memo
	return nil
}

// CreateAccount appends a create-account op to the op list.
type CreateAccount struct {
	Destination     string
	StartingBalance string
}

func (ca *CreateAccount) validate() error {
	if ca.Destination == "" {
		return errors.New("empty destination account id")
	}
	if !crypto.IsValidAccountKey(ca.Destination) {
		return errors.New("invalid destination account key")
	}
	d, err := amount.Parse(ca.StartingBalance)
	if err != nil {
		return fmt.Errorf("invalid starting balance: %v", err)
	}
	if d.IsZero() {
		return errors.New("zero starting balance")
	}
	return nil
}

func (ca *CreateAccount) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilEnvelope
	}
	if err := ca.validate(); err != nil {
		return err
	}

	e.OpList = append(e.OpList, &Op{
		Type: OpTypeCreateAccount,
		CreateAccount: &CreateAccountOp{
			Destination:     ca.Destination,
			StartingBalance: ca.StartingBalance,
		},
	})

	return nil
}

// Signer names an additional signer of an account together with its
// weight. The master key is never listed here.
type Signer struct {
	PublicKey string
	Weight    uint32
}

// AddSigners appends one set-options op per signer, in the order the
// signers are listed.
type AddSigners struct {
	Account string
	Signers []Signer
}

func (as *AddSigners) validate() error {
	if !crypto.IsValidAccountKey(as.Account) {
		return errors.New("invalid account key")
	}
	for _, s := range as.Signers {
		if !crypto.IsValidAccountKey(s.PublicKey) {
			return fmt.Errorf("invalid signer key: %s", s.PublicKey)
		}
	}
	return nil
}

func (as *AddSigners) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilEnvelope
	}
	if err := as.validate(); err != nil {
		return err
	}

	for _, s := range as.Signers {
		weight := s.Weight
		e.OpList = append(e.OpList, &Op{
			Type: OpTypeSetOptions,
			SetOptions: &SetOptionsOp{
				Source: as.Account,
				Signer: &SignerKey{PublicKey: s.PublicKey, Weight: weight},
			},
		})
	}

	return nil
}

// Trustline describes an asset the account is willing to hold,
// optionally capped and/or requiring issuer authorization. The
// authorizer seed is not used while building, it names the key whose
// signature the allow-trust op will need.
type Trustline struct {
	Code          string
	Issuer        string
	Limit         string
	MustAuthorize bool
	Authorizer    string
}

// AddTrustlines appends a change-trust op per trustline, each
// followed by an allow-trust op sourced from the issuer when the
// trustline requires authorization. The allow-trust op must come
// right after its own change-trust op, the trustline does not exist
// before it.
type AddTrustlines struct {
	Account    string
	Trustlines []Trustline
}

func (at *AddTrustlines) validate() error {
	if !crypto.IsValidAccountKey(at.Account) {
		return errors.New("invalid account key")
	}
	for _, tl := range at.Trustlines {
		if tl.Code == "" {
			return errors.New("empty trustline asset code")
		}
		if !crypto.IsValidAccountKey(tl.Issuer) {
			return fmt.Errorf("invalid trustline issuer key: %s", tl.Issuer)
		}
		if tl.Limit != "" {
			if _, err := amount.Parse(tl.Limit); err != nil {
				return fmt.Errorf("invalid trustline limit: %v", err)
			}
		}
	}
	return nil
}

func (at *AddTrustlines) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilEnvelope
	}
	if err := at.validate(); err != nil {
		return err
	}

	for _, tl := range at.Trustlines {
		ct := &ChangeTrustOp{
			Source: at.Account,
			Asset:  ParseAsset(tl.Code, tl.Issuer),
		}
		if tl.Limit != "" {
			d, _ := amount.Parse(tl.Limit)
			if d.IsPositive() {
				ct.Limit = tl.Limit
			}
		}
		e.OpList = append(e.OpList, &Op{Type: OpTypeChangeTrust, ChangeTrust: ct})

		if tl.MustAuthorize {
			e.OpList = append(e.OpList, &Op{
				Type: OpTypeAllowTrust,
				AllowTrust: &AllowTrustOp{
					Source:    tl.Issuer,
					Trustor:   at.Account,
					AssetCode: tl.Code,
					Authorize: true,
				},
			})
		}
	}

	return nil
}

// Thresholds carries the four signing weights of an account.
type Thresholds struct {
	MasterWeight  uint32
	LowThreshold  uint32
	MedThreshold  uint32
	HighThreshold uint32
}

func (th *Thresholds) validate() error {
	if th.LowThreshold > th.MedThreshold || th.MedThreshold > th.HighThreshold {
		return errors.New("thresholds are not ordered")
	}
	return nil
}

// AccountOptions appends the single set-options op carrying the
// thresholds, flags, inflation destination, home domain and the
// optional master key installed as a signer at high-threshold
// weight. It must come after signer and trustline setup for the
// account, raising thresholds first would demand signature weight
// the not-yet-installed signers cannot provide.
type AccountOptions struct {
	Account       string
	Thresholds    Thresholds
	MustAuthorize bool
	IsRevocable   bool
	InflationDest string
	HomeDomain    string
	MasterKey     string
}

func (ao *AccountOptions) validate() error {
	if !crypto.IsValidAccountKey(ao.Account) {
		return errors.New("invalid account key")
	}
	if err := ao.Thresholds.validate(); err != nil {
		return err
	}
	if ao.InflationDest != "" && !crypto.IsValidAccountKey(ao.InflationDest) {
		return errors.New("invalid inflation destination key")
	}
	if ao.MasterKey != "" && !crypto.IsValidAccountKey(ao.MasterKey) {
		return errors.New("invalid master key")
	}
	return nil
}

func (ao *AccountOptions) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilEnvelope
	}
	if err := ao.validate(); err != nil {
		return err
	}

	mw := ao.Thresholds.MasterWeight
	low := ao.Thresholds.LowThreshold
	med := ao.Thresholds.MedThreshold
	high := ao.Thresholds.HighThreshold

	op := &SetOptionsOp{
		Source:        ao.Account,
		MasterWeight:  &mw,
		LowThreshold:  &low,
		MedThreshold:  &med,
		HighThreshold: &high,
		InflationDest: ao.InflationDest,
		HomeDomain:    ao.HomeDomain,
	}

	var flags uint32
	if ao.MustAuthorize {
		flags = flags | AuthRequiredFlag
	}
	if ao.IsRevocable {
		flags = flags | AuthRevocableFlag
	}
	// A zero flags field is omitted entirely, setting it would
	// clear flags the account may already carry.
	if flags > 0 {
		op.SetFlags = &flags
	}

	if ao.MasterKey != "" {
		op.Signer = &SignerKey{
			PublicKey: ao.MasterKey,
			Weight:    ao.Thresholds.HighThreshold,
		}
	}

	e.OpList = append(e.OpList, &Op{Type: OpTypeSetOptions, SetOptions: op})

	return nil
}

// Payment appends a payment op to the op list. The amount travels as
// a decimal string.
type Payment struct {
	Source      string
	Destination string
	Asset       *Asset
	Amount      string
}

func (p *Payment) validate() error {
	if !crypto.IsValidAccountKey(p.Source) {
		return errors.New("invalid source account key")
	}
	if !crypto.IsValidAccountKey(p.Destination) {
		return errors.New("invalid destination account key")
	}
	if p.Asset == nil {
		return errors.New("asset is nil")
	}
	if p.Asset.AssetType == CUSTOM {
		if len(p.Asset.Code) == 0 || len(p.Asset.Code) > 12 {
			return errors.New("invalid asset code length")
		}
		if !crypto.IsValidAccountKey(p.Asset.Issuer) {
			return errors.New("invalid asset issuer account key")
		}
	}
	d, err := amount.Parse(p.Amount)
	if err != nil {
		return fmt.Errorf("invalid payment amount: %v", err)
	}
	if d.IsZero() {
		return errors.New("zero payment amount")
	}
	return nil
}

func (p *Payment) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilEnvelope
	}
	if err := p.validate(); err != nil {
		return err
	}

	e.OpList = append(e.OpList, &Op{
		Type: OpTypePayment,
		Payment: &PaymentOp{
			Source:      p.Source,
			Destination: p.Destination,
			Asset:       p.Asset,
			Amount:      p.Amount,
		},
	})

	return nil
}
