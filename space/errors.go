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
	"fmt"

	"github.com/dolcalmi/space-center/horizon"
)

type ErrorKind uint8

const (
	// The caller supplied a malformed specification. Raised before
	// any network call, no side effect has happened.
	KindValidation ErrorKind = iota
	// The source account is absent from the ledger.
	KindAccountNotFound
	// The assembler was mutated after sealing, a caller bug.
	KindInvalidState
	// A generic ledger-level rejection.
	KindStellar
	// The envelope carried a stale sequence number.
	KindBadSequence
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAccountNotFound:
		return "account not found"
	case KindInvalidState:
		return "invalid state"
	case KindStellar:
		return "stellar"
	case KindBadSequence:
		return "bad sequence"
	}
	return "unknown"
}

// Error is the single error type the engine surfaces to callers. It
// is a closed tagged variant: new rejection codes are mapped by
// adding table entries, not by subtyping.
type Error struct {
	Kind        ErrorKind
	Code        string
	Message     string
	Transaction string
	Raw         []byte
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s error (%s): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Message overrides for known rejection codes. Codes without an
// entry fall through to the raw message.
var customMessages = map[string]string{
	"20-05A": "invalid sequence",
}

// Kind overrides for known rejection codes. Everything else maps to
// the generic stellar kind.
var customKinds = map[string]ErrorKind{
	"20-05A": KindBadSequence,
}

// generateStellarError maps a raw gateway rejection to exactly one
// typed error. It never swallows the rejection and never retries.
func generateStellarError(rejection *horizon.Rejection) *Error {
	message := rejection.Message
	if override, ok := customMessages[rejection.Code]; ok {
		message = override
	}

	kind := KindStellar
	if override, ok := customKinds[rejection.Code]; ok {
		kind = override
	}

	return &Error{
		Kind:        kind,
		Code:        rejection.Code,
		Message:     message,
		Transaction: rejection.Transaction,
		Raw:         rejection.Raw,
	}
}

func validationError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func accountNotFoundError(accountID string) *Error {
	return &Error{
		Kind:    KindAccountNotFound,
		Message: fmt.Sprintf("account %s does not exist on the ledger", accountID),
	}
}

func invalidStateError(err error) *Error {
	return &Error{Kind: KindInvalidState, Message: err.Error()}
}
