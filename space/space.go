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

// Package space is the account provisioning and payment engine. It
// assembles correctly-ordered multi-operation envelopes, signs them
// with the minimal key set and submits them through a horizon
// gateway, translating rejections into a typed error taxonomy.
package space

import (
	"context"
	"errors"
	"fmt"

	"github.com/dolcalmi/space-center/build"
	"github.com/dolcalmi/space-center/horizon"
	"github.com/dolcalmi/space-center/log"
)

// Space is the engine facade. It owns the immutable configuration
// and the gateway client, and exposes the operation entry points
// through its resources.
type Space struct {
	conf   *Config
	client horizon.Client

	Accounts *Accounts
	Assets   *Assets
	Payments *Payments
}

// New creates an engine talking to the configured horizon gateway.
func New(conf *Config) (*Space, error) {
	if conf == nil {
		return nil, errors.New("config is nil")
	}
	return NewWithClient(conf, horizon.NewHTTPClient(conf.HorizonURL, 0))
}

// NewWithClient creates an engine with a caller-supplied gateway
// client.
func NewWithClient(conf *Config, client horizon.Client) (*Space, error) {
	if conf == nil {
		return nil, errors.New("config is nil")
	}
	if client == nil {
		return nil, errors.New("client is nil")
	}

	s := &Space{conf: conf, client: client}
	s.Accounts = &Accounts{space: s}
	s.Assets = &Assets{space: s}
	s.Payments = &Payments{space: s}

	return s, nil
}

// loadAccount fetches the current ledger state of an account,
// mapping an absent account to the typed not-found error.
func (s *Space) loadAccount(ctx context.Context, accountID string) (*horizon.Account, error) {
	account, err := s.client.LoadAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, horizon.ErrAccountNotFound) {
			return nil, accountNotFoundError(accountID)
		}
		return nil, fmt.Errorf("load account failed: %v", err)
	}
	return account, nil
}

// buildAndSubmit seals the tx, signs it with the resolved signer set
// and submits it. Every gateway rejection is funneled through the
// error mapper, nothing is retried here.
func (s *Space) buildAndSubmit(ctx context.Context, tx *build.Tx, signers *SignerSet) (*horizon.TxSuccess, error) {
	envelope, err := tx.Seal()
	if err != nil {
		if errors.Is(err, build.ErrTxSealed) {
			return nil, invalidStateError(err)
		}
		return nil, validationError("seal envelope failed: %v", err)
	}

	signed, err := envelope.Sign(signers.Keypairs()...)
	if err != nil {
		return nil, validationError("sign envelope failed: %v", err)
	}

	success, err := s.client.SubmitTransaction(ctx, signed)
	if err != nil {
		var rejection *horizon.Rejection
		if errors.As(err, &rejection) {
			mapped := generateStellarError(rejection)
			log.Errorw("submission rejected", "txKey", signed.TxKey, "code", mapped.Code, "message", mapped.Message)
			return nil, mapped
		}
		return nil, fmt.Errorf("submit envelope failed: %v", err)
	}

	log.Infow("envelope accepted", "txKey", signed.TxKey, "ops", len(envelope.OpList), "signers", signers.Len())

	return success, nil
}
