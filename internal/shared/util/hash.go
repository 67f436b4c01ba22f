package util

import (
	"crypto/sha256"
	"encoding/hex"
)

const ownerKeyLen = 32

// OwnerKey maps an owner id (user id or "guest:<id>") to a stable, path-safe directory name.
func OwnerKey(ownerID string) string {
	sum := sha256.Sum256([]byte(ownerID))
	return hex.EncodeToString(sum[:])[:ownerKeyLen]
}
