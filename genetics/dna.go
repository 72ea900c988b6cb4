package genetics

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DNA codec errors.
var (
	ErrInvalidFormat = errors.New("dna: invalid format")
	ErrChecksum      = errors.New("dna: checksum mismatch")
)

// Encode serializes a genome as base64(json) followed by a salted checksum.
func Encode(g Genome, salt string) (string, error) {
	data, err := json.Marshal(g.Genotype())
	if err != nil {
		return "", fmt.Errorf("marshal genotype: %w", err)
	}
	payload := base64.StdEncoding.EncodeToString(data)
	return payload + "." + checksum(payload, salt), nil
}

// Decode parses and verifies a DNA string produced by Encode.
func Decode(dna, salt string) (Genome, error) {
	payload, sum, ok := strings.Cut(strings.TrimSpace(dna), ".")
	if !ok || payload == "" || sum == "" {
		return Genome{}, ErrInvalidFormat
	}
	if sum != checksum(payload, salt) {
		return Genome{}, ErrChecksum
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Genome{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	var gt Genotype
	if err := json.Unmarshal(data, &gt); err != nil {
		return Genome{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return FromGenotype(gt)
}

func checksum(payload, salt string) string {
	h := sha256.Sum256([]byte(payload + salt))
	return hex.EncodeToString(h[:])
}
