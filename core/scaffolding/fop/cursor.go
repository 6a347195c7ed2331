package fop

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Cursor marks the last row of a page: its primary key and the value of the
// column the page is ordered by.
type Cursor[PK any, OrderValue any] struct {
	OrderValue OrderValue `json:"order_value"`
	PK         PK         `json:"pk"`
}

// Encode renders the cursor as unpadded URL safe base64 JSON, so tokens need
// no escaping in a query string.
func (c Cursor[PK, OrderValue]) Encode() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeCursor parses a token produced by Encode. An empty token yields nil.
// Tokens carrying fields other than pk and order_value are rejected.
func DecodeCursor[PK any, OrderValue any](token string) (*Cursor[PK, OrderValue], error) {
	if token == "" {
		return nil, nil
	}

	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var cursor Cursor[PK, OrderValue]
	if err := dec.Decode(&cursor); err != nil {
		return nil, fmt.Errorf("unmarshal cursor: %w", err)
	}

	return &cursor, nil
}
