// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Digest is a SHA-256 digest.
type Digest [32]byte

// String returns the canonical hex form.
func (d Digest) String() string {
	return FormatDigest(d)
}

// HashFile computes the SHA-256 digest of the file at path. The file
// is streamed through the hash function in chunks (via io.Copy).
func HashFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	digest, err := HashReader(file)
	if err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return digest, nil
}

// HashReader computes the SHA-256 digest of everything read from
// reader until EOF.
func HashReader(reader io.Reader) (Digest, error) {
	hasher := sha256.New()
	if _, err := io.Copy(hasher, reader); err != nil {
		return Digest{}, err
	}

	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// Sum returns the SHA-256 digest of data.
func Sum(data []byte) Digest {
	return Digest(sha256.Sum256(data))
}

// FormatDigest returns the hex-encoded string representation of a
// digest. This is the form written into attestations and log output.
func FormatDigest(digest Digest) string {
	return hex.EncodeToString(digest[:])
}

// ParseDigest parses a hex-encoded SHA-256 digest string. Returns an
// error if the string is not a valid 64-character hex encoding of 32
// bytes.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing hash digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("hash digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}
