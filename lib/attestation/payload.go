// Copyright 2026 The rdv Authors
// SPDX-License-Identifier: Apache-2.0

package attestation

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/rdv-project/rdv/lib/codec"
)

// Digest is a 32-byte BLAKE3 digest of a signing payload.
type Digest [32]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// payloadDomainKey is the ASCII domain name zero-padded to 32 bytes.
// Changing it changes every payload digest.
var payloadDomainKey = [32]byte{
	'r', 'd', 'v', '.', 'a', 't', 't', 'e', 's', 't', 'a', 't', 'i', 'o', 'n', '.',
	'p', 'a', 'y', 'l', 'o', 'a', 'd', 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// SigningPayload returns the Core Deterministic CBOR encoding of the
// record with its signature cleared. Equal records produce equal
// payloads regardless of map iteration order.
func SigningPayload(record *Record) ([]byte, error) {
	unsigned := *record
	unsigned.Signature = nil
	payload, err := codec.Marshal(&unsigned)
	if err != nil {
		return nil, fmt.Errorf("encoding signing payload: %w", err)
	}
	return payload, nil
}

// PayloadDigest is the keyed BLAKE3 digest of a signing payload.
func PayloadDigest(payload []byte) Digest {
	hasher, err := blake3.NewKeyed(payloadDomainKey[:])
	if err != nil {
		panic("attestation: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(payload)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}
