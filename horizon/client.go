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

// Package horizon talks to a horizon-compatible ledger gateway over
// HTTP. It knows how to load account state and submit signed
// envelopes, nothing more. Rejections come back as structured
// payloads for the error mapper, never as bare strings.
package horizon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dolcalmi/space-center/build"
)

var (
	// The requested source account is absent from the ledger.
	ErrAccountNotFound = errors.New("account not found")
)

// Account represents the ledger state of an account at load time.
type Account struct {
	// Public key of this account.
	AccountID string `json:"account_id"`
	// The account balance in native units, as a decimal string.
	Balance string `json:"balance"`
	// Latest consumed transaction sequence number.
	SeqNum uint64 `json:"seq_num"`
	// Number of subentries belonging to the account.
	EntryCount int32 `json:"entry_count"`
}

// TxSuccess is the gateway's acknowledgement of an accepted envelope.
type TxSuccess struct {
	Hash   string `json:"hash"`
	Ledger int64  `json:"ledger"`
}

// Rejection is the structured failure payload of a refused
// submission. Code carries the protocol-defined rejection code the
// error mapper translates.
type Rejection struct {
	Type        string `json:"type"`
	Code        string `json:"code"`
	Message     string `json:"message"`
	Transaction string `json:"transaction"`
	Raw         []byte `json:"-"`
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("submission rejected (%s): %s", r.Code, r.Message)
}

// Client loads account state and submits signed envelopes. Exactly
// one network round-trip per call, no retries: blindly resubmitting
// a sequence-consuming envelope risks a double spend.
type Client interface {
	LoadAccount(ctx context.Context, accountID string) (*Account, error)
	SubmitTransaction(ctx context.Context, envelope *build.SignedEnvelope) (*TxSuccess, error)
}

// HTTPClient is the HTTP/JSON implementation of Client.
type HTTPClient struct {
	endpoint string
	client   *http.Client
}

// NewHTTPClient creates a client for the given gateway endpoint.
func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// LoadAccount gets the current state of the account with the
// requested account id.
func (c *HTTPClient) LoadAccount(ctx context.Context, accountID string) (*Account, error) {
	url := fmt.Sprintf("%s/accounts/%s", c.endpoint, accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build account request failed: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load account failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrAccountNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeRejection(resp.Body)
	}

	var account Account
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("decode account failed: %v", err)
	}

	return &account, nil
}

// SubmitTransaction posts the signed envelope to the gateway. Secret
// material never appears in the request, only the payload and its
// signatures travel.
func (c *HTTPClient) SubmitTransaction(ctx context.Context, envelope *build.SignedEnvelope) (*TxSuccess, error) {
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("encode signed envelope failed: %v", err)
	}

	url := fmt.Sprintf("%s/transactions", c.endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build submit request failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit transaction failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeRejection(resp.Body)
	}

	var success TxSuccess
	if err := json.NewDecoder(resp.Body).Decode(&success); err != nil {
		return nil, fmt.Errorf("decode submit response failed: %v", err)
	}

	return &success, nil
}

func decodeRejection(r io.Reader) *Rejection {
	raw, err := io.ReadAll(r)
	if err != nil {
		return &Rejection{Code: "unreadable_response", Raw: nil}
	}

	var rejection Rejection
	if err := json.Unmarshal(raw, &rejection); err != nil {
		rejection.Code = "malformed_response"
	}
	rejection.Raw = raw

	return &rejection
}
