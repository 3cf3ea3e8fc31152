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

package crypto

import (
	"crypto/sha256"
)

// SHA256 hash of the bytes as a raw 32-byte array.
func SHA256HashBytes(b []byte) [32]byte {
	return sha256.Sum256(b)
}

// TxKey derives the typed transaction key of an encoded envelope.
func TxKey(payload []byte) string {
	k := &Key{
		Code: KeyTypeTx,
		Hash: SHA256HashBytes(payload),
	}
	return EncodeKey(k)
}
