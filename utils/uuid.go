package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string
func GenerateID() string {
	return uuid.New().String()
}

// GeneratePeerID returns a random 32-character hex identity for a peer
func GeneratePeerID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ShortLabel is the display name of a peer: the first six characters of its identity
func ShortLabel(peerID string) string {
	if len(peerID) <= 6 {
		return peerID
	}
	return peerID[:6]
}
