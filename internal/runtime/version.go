package runtime

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// BuildVersion calculates version metadata for the runtime snapshot
func BuildVersion(payload any, baseVersion string) Version {
	raw, _ := json.Marshal(payload)

	sum := sha256.Sum256(raw)

	return Version{
		Version:   baseVersion,
		Checksum:  hex.EncodeToString(sum[:]),
		Generated: time.Now().Unix(),
	}
}
