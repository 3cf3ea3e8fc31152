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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dolcalmi/space-center/crypto"
)

// Fee charged per operation in the envelope.
var BaseFee = int64(100)

var (
	// Returned when a mutator is applied after the tx was sealed.
	// It signals a caller bug, not a ledger condition.
	ErrTxSealed = errors.New("tx is sealed")
)

type txState uint8

const (
	txEmpty txState = iota
	txAccumulating
	txSealed
)

// Envelope is an ordered bundle of operations bound to a source
// account and one of its sequence numbers. It is built incrementally
// through a Tx and frozen by Seal.
type Envelope struct {
	SourceAccount string `json:"source_account"`
	SeqNum        uint64 `json:"seq_num"`
	Fee           int64  `json:"fee"`
	Memo          *Memo  `json:"memo,omitempty"`
	OpList        []*Op  `json:"op_list"`
}

// Encode renders the canonical payload of the envelope. The same
// bytes are signed locally and submitted to the network.
func (e *Envelope) Encode() ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode envelope failed: %v", err)
	}
	return b, nil
}

// Signature is one signing pass over the envelope payload.
type Signature struct {
	Signer    string `json:"signer"`
	Signature string `json:"signature"`
}

// SignedEnvelope carries the encoded payload with its signatures and
// the derived tx key. It is consumed exactly once, no envelope is
// resubmitted automatically.
type SignedEnvelope struct {
	TxKey      string      `json:"tx_key"`
	Payload    []byte      `json:"payload"`
	Signatures []Signature `json:"signatures"`
}

// Sign encodes the envelope once and signs the payload with each of
// the supplied keypairs in order. De-duplication of keypairs is the
// caller's concern.
func (e *Envelope) Sign(keypairs ...*crypto.Keypair) (*SignedEnvelope, error) {
	if len(keypairs) == 0 {
		return nil, errors.New("no signing keypairs")
	}

	payload, err := e.Encode()
	if err != nil {
		return nil, err
	}

	se := &SignedEnvelope{
		TxKey:   crypto.TxKey(payload),
		Payload: payload,
	}
	for _, kp := range keypairs {
		sig, err := crypto.Sign(kp.Seed, payload)
		if err != nil {
			return nil, fmt.Errorf("sign the envelope failed: %v", err)
		}
		se.Signatures = append(se.Signatures, Signature{
			Signer:    kp.PublicKey,
			Signature: sig,
		})
	}

	return se, nil
}

// Tx serves as the main object for assembling an envelope. It moves
// through three states: empty until the first mutator is added,
// accumulating while operations are appended, and sealed once the
// operation order is frozen.
type Tx struct {
	state    txState
	envelope *Envelope
}

func NewTx() *Tx {
	return &Tx{state: txEmpty, envelope: &Envelope{}}
}

// Add applies one or more mutators to the envelope being built. If
// any mutation fails the method fails and the remaining mutators are
// not applied. Adding to a sealed tx fails with ErrTxSealed.
func (t *Tx) Add(ms ...TxMutator) error {
	if t.state == txSealed {
		return ErrTxSealed
	}
	t.state = txAccumulating

	for _, m := range ms {
		if err := m.Mutate(t.envelope); err != nil {
			return err
		}
	}

	return nil
}

// Seal validates the envelope, computes the total fee and freezes
// the operation order. Sealing twice fails with ErrTxSealed.
func (t *Tx) Seal() (*Envelope, error) {
	if t.state == txSealed {
		return nil, ErrTxSealed
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("tx is invalid: %v", err)
	}

	t.envelope.Fee = BaseFee * int64(len(t.envelope.OpList))
	t.state = txSealed

	return t.envelope, nil
}

func (t *Tx) validate() error {
	if t.envelope.SourceAccount == "" {
		return errors.New("empty source account")
	}
	if t.envelope.SeqNum == 0 {
		return errors.New("zero seqnum")
	}
	if len(t.envelope.OpList) == 0 {
		return errors.New("empty op list")
	}
	return nil
}
