package goUsers

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// generateID returns a collision-resistant opaque string: a millisecond
// time prefix interleaved with slices of a hash over two independent random
// draws. Callers must not parse it.
func generateID() string {
	digest := sha256.Sum256([]byte(uuid.NewString() + uuid.NewString()))
	hash := hex.EncodeToString(digest[:])

	return strconv.FormatInt(time.Now().UnixMilli(), 10) +
		hash[:16] +
		strings.ReplaceAll(uuid.NewString(), "-", "") +
		hash[16:32]
}

// generateCreateAt returns the current time as integer epoch milliseconds.
func generateCreateAt() int64 {
	return time.Now().UnixMilli()
}

// generateToken returns an opaque high-entropy string derived from time
// plus randomness. It is a non-reusable session/reset token, not a
// capability credential: no expiry or revocation is managed here.
func generateToken() string {
	digest := sha256.Sum256([]byte(strconv.FormatInt(time.Now().UnixNano(), 10) + uuid.NewString()))
	return hex.EncodeToString(digest[:])
}

// applyAutoGenerate assigns every configured generated field onto user, in
// declared order, overwriting caller-supplied values.
func (e *Engine) applyAutoGenerate(user Document) {
	for _, key := range e.config.AutoGenerate {
		switch key {
		case FieldID:
			user[FieldID] = generateID()
		case FieldCreateAt:
			user[FieldCreateAt] = generateCreateAt()
		case FieldToken:
			user[FieldToken] = generateToken()
		}
	}
}
