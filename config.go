package goUsers

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/MrEthical07/goUsers/password"
)

// DefaultCollectionName is used when Config.CollectionName is empty.
const DefaultCollectionName = "users"

// autoGenerateAllows is the fixed allow-list for Config.AutoGenerate.
// Anything else is a construction error before any documents are touched.
var autoGenerateAllows = []string{FieldID, FieldCreateAt, FieldToken}

// Config defines the engine's construction-time configuration. It is
// normalized and cloned by [Builder.Build]; the engine never observes later
// mutation of the caller's copy.
type Config struct {
	// CollectionName is the document collection the engine manages.
	// Defaults to "users".
	CollectionName string

	// AutoGenerate lists the fields generated (and overwritten) on every
	// registration, in declared order. Entries must be drawn from
	// id/createAt/token. Nil defaults to {id, token}; an empty non-nil
	// slice disables generation.
	AutoGenerate []string

	// UniqKeys lists the fields whose values must be unique across the
	// collection. Empty disables uniqueness enforcement.
	UniqKeys []string

	// PasswordHash enables bcrypt hashing of the password field. Nil
	// disables hashing and makes authentication compare plaintext.
	PasswordHash *PasswordHashConfig

	// ConstraintsAuthentication maps field names to required values.
	// Documents diverging on any listed field are blocked from
	// authenticating even with correct credentials.
	ConstraintsAuthentication map[string]any

	SessionTokens SessionTokenConfig
	Audit         AuditConfig
	Metrics       MetricsConfig
}

/*
====================================
PASSWORD HASH CONFIG
====================================
*/

// PasswordHashConfig is the password hashing policy. The algorithm is
// always bcrypt; only the cost is tunable.
type PasswordHashConfig struct {
	// Cost is the bcrypt cost. Zero or an out-of-range value falls back
	// to password.DefaultCost.
	Cost int

	// Salt is a legacy alias for Cost, honored only when Cost is zero.
	//
	// Deprecated: set Cost.
	Salt int

	// Hash names the algorithm. Normalized to "bcrypt".
	Hash string
}

/*
====================================
SESSION TOKEN CONFIG
====================================
*/

// SessionTokenConfig enables minting a signed HS256 token on successful
// authentication. Token verification is out of scope for this module.
type SessionTokenConfig struct {
	Enabled    bool
	SigningKey []byte
	TTL        time.Duration // defaults to 15 minutes
	Issuer     string
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig controls the background audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events instead of blocking when the buffer is
	// full.
	DropIfFull bool
}

// MetricsConfig controls the atomic counter set.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		CollectionName: DefaultCollectionName,
		AutoGenerate:   []string{FieldID, FieldToken},
		Audit: AuditConfig{
			BufferSize: 64,
			DropIfFull: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg

	if cfg.AutoGenerate != nil {
		out.AutoGenerate = append([]string(nil), cfg.AutoGenerate...)
	}
	if cfg.UniqKeys != nil {
		out.UniqKeys = append([]string(nil), cfg.UniqKeys...)
	}
	if cfg.PasswordHash != nil {
		ph := *cfg.PasswordHash
		out.PasswordHash = &ph
	}
	if cfg.ConstraintsAuthentication != nil {
		constraints := make(map[string]any, len(cfg.ConstraintsAuthentication))
		for key, value := range cfg.ConstraintsAuthentication {
			constraints[key] = value
		}
		out.ConstraintsAuthentication = constraints
	}
	out.SessionTokens.SigningKey = cloneBytes(cfg.SessionTokens.SigningKey)

	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

// normalize trims list-valued options, applies defaults, and validates the
// allow-listed parts. Called by Build on an already-cloned config.
func (c *Config) normalize() error {
	c.CollectionName = strings.TrimSpace(c.CollectionName)
	if c.CollectionName == "" {
		c.CollectionName = DefaultCollectionName
	}

	if c.AutoGenerate == nil {
		c.AutoGenerate = []string{FieldID, FieldToken}
	}
	c.AutoGenerate = normalizeListKeys(c.AutoGenerate)
	for _, key := range c.AutoGenerate {
		if !contains(autoGenerateAllows, key) {
			return fmt.Errorf("%w: %q", ErrAutoGenerateUnknown, key)
		}
	}

	c.UniqKeys = normalizeListKeys(c.UniqKeys)

	if c.PasswordHash != nil {
		cost := c.PasswordHash.Cost
		if cost == 0 {
			cost = c.PasswordHash.Salt
		}
		if cost < password.MinCost || cost > password.MaxCost {
			cost = password.DefaultCost
		}
		c.PasswordHash.Cost = cost
		c.PasswordHash.Salt = 0
		c.PasswordHash.Hash = "bcrypt"
	}

	// Function-valued constraints cannot be serialized or compared;
	// discard them like any other non-serializable field.
	for key, value := range c.ConstraintsAuthentication {
		if value != nil && reflect.TypeOf(value).Kind() == reflect.Func {
			delete(c.ConstraintsAuthentication, key)
		}
	}
	if len(c.ConstraintsAuthentication) == 0 {
		c.ConstraintsAuthentication = nil
	}

	if c.SessionTokens.Enabled {
		if len(c.SessionTokens.SigningKey) == 0 {
			return ErrTokenSigningKeyRequired
		}
		if c.SessionTokens.TTL <= 0 {
			c.SessionTokens.TTL = 15 * time.Minute
		}
	}

	if c.Audit.BufferSize <= 0 {
		c.Audit.BufferSize = 64
	}

	return nil
}

// normalizeListKeys trims every entry and drops the ones left empty.
// Declared order is preserved.
func normalizeListKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out = append(out, key)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, entry := range list {
		if entry == s {
			return true
		}
	}
	return false
}
