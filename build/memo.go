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
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type MemoType string

const (
	MemoText   MemoType = "text"
	MemoID     MemoType = "id"
	MemoHash   MemoType = "hash"
	MemoReturn MemoType = "return"
)

// Memo is the optional annotation attached to an envelope.
type Memo struct {
	Type    MemoType `json:"type"`
	Content string   `json:"content"`
}

// TextMemo wraps a plain string as a text memo.
func TextMemo(content string) *Memo {
	return &Memo{Type: MemoText, Content: content}
}

// ParseMemo maps a memo type name and content to a Memo. Both the
// short and the MEMO_ prefixed type names are accepted. An unknown
// type name is rejected rather than silently dropped.
func ParseMemo(memoType, content string) (*Memo, error) {
	switch strings.ToUpper(memoType) {
	case "TEXT", "MEMO_TEXT":
		return &Memo{Type: MemoText, Content: content}, nil
	case "ID", "MEMO_ID":
		return &Memo{Type: MemoID, Content: content}, nil
	case "HASH", "MEMO_HASH":
		return &Memo{Type: MemoHash, Content: content}, nil
	case "RETURN", "MEMO_RETURN":
		return &Memo{Type: MemoReturn, Content: content}, nil
	}
	return nil, fmt.Errorf("unknown memo type: %s", memoType)
}

func (m *Memo) validate() error {
	switch m.Type {
	case MemoText:
		if len(m.Content) > 28 {
			return errors.New("text memo is too long")
		}
	case MemoID:
		if _, err := strconv.ParseUint(m.Content, 10, 64); err != nil {
			return errors.New("id memo is not a valid uint64")
		}
	case MemoHash, MemoReturn:
		b, err := hex.DecodeString(m.Content)
		if err != nil || len(b) != 32 {
			return errors.New("hash memo is not a 32-byte hex string")
		}
	default:
		return fmt.Errorf("unknown memo type: %s", m.Type)
	}
	return nil
}
