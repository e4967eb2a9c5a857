package goUsers

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/MrEthical07/goUsers/password"
	"github.com/MrEthical07/goUsers/token"
)

// Builder assembles an [Engine]. Configure it during initialization and
// call Build exactly once; a Builder must not be reused.
type Builder struct {
	config    Config
	storage   Storage
	auditSink AuditSink

	built bool
}

// New returns a Builder carrying the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration. The config is cloned;
// later caller-side mutation is not observed.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStorage supplies the document-store collaborator the engine wraps.
func (b *Builder) WithStorage(storage Storage) *Builder {
	b.storage = storage
	return b
}

// WithAuditSink supplies the sink that receives registration and
// authentication audit events. Effective only when Config.Audit.Enabled is
// set.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles the atomic counter set.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithSessionTokens enables signed session tokens on successful
// authentication. A zero ttl keeps the default.
func (b *Builder) WithSessionTokens(signingKey []byte, ttl time.Duration) *Builder {
	b.config.SessionTokens.Enabled = true
	b.config.SessionTokens.SigningKey = cloneBytes(signingKey)
	b.config.SessionTokens.TTL = ttl
	return b
}

// Build normalizes the configuration, verifies the storage collaborator,
// and wires the engine. All configuration errors surface here, before any
// document is ever touched.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	if b.storage == nil {
		return nil, ErrStorageRequired
	}
	if err := checkStorageConflict(b.storage); err != nil {
		return nil, err
	}

	engine := &Engine{
		config:  cfg,
		storage: b.storage,
	}

	if cfg.PasswordHash != nil {
		engine.hasher = password.New(cfg.PasswordHash.Cost)
	}

	if cfg.SessionTokens.Enabled {
		tm, err := token.NewManager(token.Config{
			SigningKey: cloneBytes(cfg.SessionTokens.SigningKey),
			TTL:        cfg.SessionTokens.TTL,
			Issuer:     cfg.SessionTokens.Issuer,
		})
		if err != nil {
			return nil, err
		}
		engine.tokens = tm
	}

	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	return engine, nil
}

// storageConflictMethods are the [UserService] method names a storage
// object must not already expose. The check is by name, not signature:
// any foreign users interface on the collaborator would be silently
// shadowed by the facade otherwise.
var storageConflictMethods = []string{
	"AddUser",
	"Authentication",
	"GetUserByID",
	"GetUsersBy",
}

func checkStorageConflict(storage Storage) error {
	value := reflect.ValueOf(storage)
	for _, name := range storageConflictMethods {
		if value.MethodByName(name).IsValid() {
			return fmt.Errorf("%w: %s", ErrStorageConflict, name)
		}
	}
	return nil
}
