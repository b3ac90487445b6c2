// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// Legacy sentinels used by the persisted arrays and text tables.
const (
	// Unavailable marks a value that is not known or not applicable.
	Unavailable = -9999
	// Missing marks a field that was empty in the source table.
	Missing = -8888
)

// Quantity is a physical value that may be unavailable. The zero value is
// unavailable. At the serialization boundary an unavailable quantity is
// written as the Unavailable sentinel, and either sentinel reads back as
// unavailable.
type Quantity struct {
	Value float64
	Valid bool
}

// Some returns an available quantity holding v.
func Some(v float64) Quantity {
	return Quantity{Value: v, Valid: true}
}

// None returns an unavailable quantity.
func None() Quantity {
	return Quantity{}
}

// QuantityOf converts a raw number from a table. Sentinel values yield an
// unavailable quantity so they never enter arithmetic.
func QuantityOf(v float64) Quantity {
	if IsSentinel(v) {
		return None()
	}
	return Some(v)
}

// IsSentinel reports whether v is one of the legacy sentinels.
func IsSentinel(v float64) bool {
	return v == Unavailable || v == Missing
}

// Sub returns q - o, unavailable when either operand is.
func (q Quantity) Sub(o Quantity) Quantity {
	if !q.Valid || !o.Valid {
		return None()
	}
	return Some(q.Value - o.Value)
}

// Minus subtracts a constant from an available quantity.
func (q Quantity) Minus(c float64) Quantity {
	if !q.Valid {
		return None()
	}
	return Some(q.Value - c)
}

// Positive reports whether q is available and strictly greater than zero.
func (q Quantity) Positive() bool {
	return q.Valid && q.Value > 0
}

// Or returns q when available, otherwise fallback.
func (q Quantity) Or(fallback Quantity) Quantity {
	if q.Valid {
		return q
	}
	return fallback
}

// Sentinel returns the value, or Unavailable when q is unavailable.
func (q Quantity) Sentinel() float64 {
	if !q.Valid {
		return Unavailable
	}
	return q.Value
}

// String formats the quantity the way the text reports print it.
func (q Quantity) String() string {
	if !q.Valid {
		return strconv.Itoa(Unavailable)
	}
	return strconv.FormatFloat(q.Value, 'g', -1, 64)
}

// MarshalJSON writes the value or the Unavailable sentinel.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, q.Sentinel(), 'g', -1, 64), nil
}

// UnmarshalJSON reads a number; sentinels and null become unavailable.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*q = None()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding quantity: %w", err)
	}
	*q = QuantityOf(v)
	return nil
}

// MarshalYAML writes the value or the Unavailable sentinel.
func (q Quantity) MarshalYAML() (any, error) {
	return q.Sentinel(), nil
}

// UnmarshalYAML reads a number; sentinels become unavailable.
func (q *Quantity) UnmarshalYAML(node *yaml.Node) error {
	var v float64
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("decoding quantity: %w", err)
	}
	*q = QuantityOf(v)
	return nil
}
