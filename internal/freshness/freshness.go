// Package freshness fingerprints the application state so clients can detect edits made
// elsewhere. The fingerprint is the SHA-256 of a canonical JSON rendering in which every
// object's keys are sorted.
package freshness

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/dohsimpson/habittrove/internal/models"
)

// Canonicalize renders state as canonical JSON.
func Canonicalize(state models.State) (string, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to encode state: %w", err)
	}
	out, err := CanonicalJSON(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// CanonicalJSON rewrites an arbitrary JSON document with sorted object keys and no
// insignificant whitespace. Numbers keep their original text.
func CanonicalJSON(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Maps encode with sorted keys.
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Digest returns the lowercase hex SHA-256 of s.
func Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Hash is Digest(Canonicalize(state)).
func Hash(state models.State) (string, error) {
	c, err := Canonicalize(state)
	if err != nil {
		return "", err
	}
	return Digest(c), nil
}

// Check compares a client's last seen hash with the current state.
func Check(state models.State, clientHash string) (fresh bool, current string, err error) {
	current, err = Hash(state)
	if err != nil {
		return false, "", err
	}
	return current == clientHash, current, nil
}
