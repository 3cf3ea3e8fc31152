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
	"github.com/dolcalmi/space-center/horizon"
	"github.com/dolcalmi/space-center/log"
)

// Operation-count ceiling per envelope imposed by the ledger.
const BatchChunkSize = 100

// Payments dispatches single and batched payments.
type Payments struct {
	space *Space
}

// PaymentOptions describes one payment. The payer is the fee and
// sequence source; it defaults to the sender but may be a distinct
// funding account.
type PaymentOptions struct {
	Amount      string
	AssetCode   string
	AssetIssuer string
	Recipient   string
	SenderSeed  string
	// Seed of the account paying the fee and providing the
	// sequence number, when different from the sender.
	PayerSeed string
	// Use the configured funding account as payer.
	UseFunding bool
	Memo       *build.Memo
}

// AssetRef names an asset in a result record.
type AssetRef struct {
	Code   string
	Issuer string
}

// PaymentResult is the outcome of a single dispatched payment.
type PaymentResult struct {
	Amount        string
	Asset         AssetRef
	Sender        string
	Recipient     string
	TransactionID string
}

// BatchRecipient is one entry of a payment batch.
type BatchRecipient struct {
	Account string
	Amount  string
}

// BatchOptions describes a batched payment run.
type BatchOptions struct {
	Recipients  []BatchRecipient
	AssetCode   string
	AssetIssuer string
	SenderSeed  string
	PayerSeed   string
	UseFunding  bool
	Memo        *build.Memo
}

// BatchChunkResult records one accepted chunk envelope.
type BatchChunkResult struct {
	TransactionID string
	Recipients    []BatchRecipient
}

// BatchResult is the outcome of a completed batch.
type BatchResult struct {
	Sender       string
	Asset        AssetRef
	Transactions []BatchChunkResult
}

// Create dispatches a single payment.
func (p *Payments) Create(ctx context.Context, opts *PaymentOptions) (*PaymentResult, error) {
	if opts == nil {
		return nil, validationError("payment options are nil")
	}
	if opts.SenderSeed == "" {
		return nil, validationError("sender seed is missing")
	}

	sender, err := crypto.KeypairFromSeed(opts.SenderSeed)
	if err != nil {
		return nil, validationError("invalid sender seed: %v", err)
	}
	payer, err := p.payerKeypair(sender, opts.PayerSeed, opts.UseFunding)
	if err != nil {
		return nil, err
	}

	source, err := p.space.loadAccount(ctx, payer.PublicKey)
	if err != nil {
		return nil, err
	}

	tx := build.NewTx()
	err = tx.Add(
		&build.SourceAccount{AccountID: payer.PublicKey},
		&build.SeqNum{SeqNum: source.SeqNum + 1},
		&build.AddMemo{Memo: opts.Memo},
		&build.Payment{
			Source:      sender.PublicKey,
			Destination: opts.Recipient,
			Asset:       build.ParseAsset(opts.AssetCode, opts.AssetIssuer),
			Amount:      opts.Amount,
		},
	)
	if err != nil {
		return nil, validationError("assemble payment envelope failed: %v", err)
	}

	// The signer set de-duplicates by seed, so payer == sender
	// yields a single signing pass.
	signers := NewSignerSet(payer, sender)

	success, err := p.space.buildAndSubmit(ctx, tx, signers)
	if err != nil {
		return nil, err
	}

	return &PaymentResult{
		Amount:        opts.Amount,
		Asset:         assetRef(opts.AssetCode, opts.AssetIssuer),
		Sender:        sender.PublicKey,
		Recipient:     opts.Recipient,
		TransactionID: success.Hash,
	}, nil
}

// Batch dispatches payments to many recipients. Recipients are
// partitioned into chunks of at most BatchChunkSize operations and
// the chunks are submitted strictly serially: every chunk consumes
// one of the payer's sequence numbers, so each envelope must be
// built against the state left by the previous submission. A failed
// chunk aborts the rest of the batch.
func (p *Payments) Batch(ctx context.Context, opts *BatchOptions) (*BatchResult, error) {
	if opts == nil {
		return nil, validationError("batch options are nil")
	}
	if opts.SenderSeed == "" {
		return nil, validationError("sender seed is missing")
	}
	if len(opts.Recipients) == 0 {
		return nil, validationError("batch has no recipients")
	}

	sender, err := crypto.KeypairFromSeed(opts.SenderSeed)
	if err != nil {
		return nil, validationError("invalid sender seed: %v", err)
	}
	payer, err := p.payerKeypair(sender, opts.PayerSeed, opts.UseFunding)
	if err != nil {
		return nil, err
	}

	asset := build.ParseAsset(opts.AssetCode, opts.AssetIssuer)
	chunks := chunkRecipients(opts.Recipients, BatchChunkSize)

	result := &BatchResult{
		Sender: sender.PublicKey,
		Asset:  assetRef(opts.AssetCode, opts.AssetIssuer),
	}

	for i, chunk := range chunks {
		success, err := p.submitChunk(ctx, sender, payer, asset, chunk, opts.Memo)
		if err != nil {
			log.Warnw("batch aborted", "chunk", i, "of", len(chunks), "submitted", len(result.Transactions))
			return nil, err
		}
		result.Transactions = append(result.Transactions, BatchChunkResult{
			TransactionID: success.Hash,
			Recipients:    chunk,
		})
	}

	return result, nil
}

// submitChunk builds and submits one chunk envelope against the
// payer's current sequence number.
func (p *Payments) submitChunk(ctx context.Context, sender, payer *crypto.Keypair, asset *build.Asset, chunk []BatchRecipient, memo *build.Memo) (*horizon.TxSuccess, error) {
	source, err := p.space.loadAccount(ctx, payer.PublicKey)
	if err != nil {
		return nil, err
	}

	tx := build.NewTx()
	mutators := []build.TxMutator{
		&build.SourceAccount{AccountID: payer.PublicKey},
		&build.SeqNum{SeqNum: source.SeqNum + 1},
		&build.AddMemo{Memo: memo},
	}
	for _, r := range chunk {
		mutators = append(mutators, &build.Payment{
			Source:      sender.PublicKey,
			Destination: r.Account,
			Asset:       asset,
			Amount:      r.Amount,
		})
	}
	if err := tx.Add(mutators...); err != nil {
		return nil, validationError("assemble batch envelope failed: %v", err)
	}

	return p.space.buildAndSubmit(ctx, tx, NewSignerSet(payer, sender))
}

// payerKeypair resolves the fee/sequence source of a payment.
func (p *Payments) payerKeypair(sender *crypto.Keypair, payerSeed string, useFunding bool) (*crypto.Keypair, error) {
	if useFunding {
		payer, err := crypto.KeypairFromSeed(p.space.conf.FundingSeed)
		if err != nil {
			return nil, validationError("invalid funding seed: %v", err)
		}
		return payer, nil
	}
	if payerSeed != "" {
		payer, err := crypto.KeypairFromSeed(payerSeed)
		if err != nil {
			return nil, validationError("invalid payer seed: %v", err)
		}
		return payer, nil
	}
	return sender, nil
}

func assetRef(code, issuer string) AssetRef {
	if code == build.NativeAssetCode {
		return AssetRef{Code: code, Issuer: "native"}
	}
	return AssetRef{Code: code, Issuer: issuer}
}

func chunkRecipients(recipients []BatchRecipient, size int) [][]BatchRecipient {
	var chunks [][]BatchRecipient
	for size < len(recipients) {
		recipients, chunks = recipients[size:], append(chunks, recipients[0:size:size])
	}
	return append(chunks, recipients)
}
