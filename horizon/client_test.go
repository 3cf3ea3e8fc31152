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

package horizon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dolcalmi/space-center/build"
	"github.com/dolcalmi/space-center/crypto"
)

func TestLoadAccount(t *testing.T) {
	kp, err := crypto.RandomKeypair()
	assert.Nil(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/"+kp.PublicKey, r.URL.Path)
		json.NewEncoder(w).Encode(&Account{
			AccountID:  kp.PublicKey,
			Balance:    "100.5",
			SeqNum:     41,
			EntryCount: 2,
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 0)
	account, err := c.LoadAccount(context.Background(), kp.PublicKey)
	assert.Nil(t, err)
	assert.Equal(t, kp.PublicKey, account.AccountID)
	assert.Equal(t, uint64(41), account.SeqNum)
}

func TestLoadAccountNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 0)
	_, err := c.LoadAccount(context.Background(), "missing")
	assert.Equal(t, ErrAccountNotFound, err)
}

func signedEnvelope(t *testing.T) (*build.SignedEnvelope, *crypto.Keypair) {
	src, err := crypto.RandomKeypair()
	assert.Nil(t, err)
	dst, err := crypto.RandomKeypair()
	assert.Nil(t, err)

	tx := build.NewTx()
	err = tx.Add(
		&build.SourceAccount{AccountID: src.PublicKey},
		&build.SeqNum{SeqNum: 1},
		&build.Payment{
			Source:      src.PublicKey,
			Destination: dst.PublicKey,
			Asset:       build.ParseAsset(build.NativeAssetCode, ""),
			Amount:      "1",
		},
	)
	assert.Nil(t, err)
	e, err := tx.Seal()
	assert.Nil(t, err)
	se, err := e.Sign(src)
	assert.Nil(t, err)
	return se, src
}

func TestSubmitTransaction(t *testing.T) {
	se, _ := signedEnvelope(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions", r.URL.Path)

		var received build.SignedEnvelope
		err := json.NewDecoder(r.Body).Decode(&received)
		assert.Nil(t, err)
		assert.Equal(t, se.TxKey, received.TxKey)

		json.NewEncoder(w).Encode(&TxSuccess{Hash: received.TxKey, Ledger: 7})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 0)
	success, err := c.SubmitTransaction(context.Background(), se)
	assert.Nil(t, err)
	assert.Equal(t, se.TxKey, success.Hash)
	assert.Equal(t, int64(7), success.Ledger)
}

func TestSubmitTransactionRejected(t *testing.T) {
	se, _ := signedEnvelope(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(&Rejection{
			Type:    "transaction",
			Code:    "20-05A",
			Message: "tx_bad_seq",
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 0)
	_, err := c.SubmitTransaction(context.Background(), se)
	assert.NotNil(t, err)

	rejection, ok := err.(*Rejection)
	assert.True(t, ok)
	assert.Equal(t, "20-05A", rejection.Code)
	assert.NotEmpty(t, rejection.Raw)
}
