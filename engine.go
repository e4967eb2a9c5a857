package goUsers

import (
	"context"
	"reflect"
	"strings"
)

// Engine is the user-account facade over a [Storage] collaborator. It is
// safe for concurrent use after [Builder.Build], within the single-writer
// registration assumption documented in the package comment.
type Engine struct {
	config  Config
	storage Storage

	hasher  passwordHasher
	tokens  sessionTokenIssuer
	audit   *auditDispatcher
	metrics *Metrics
}

var _ UserService = (*Engine)(nil)

// passwordHasher is the slice of the password subpackage the engine needs.
type passwordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// sessionTokenIssuer is the slice of the token subpackage the engine needs.
type sessionTokenIssuer interface {
	Issue(userID string) (string, error)
}

// Collection returns the normalized collection name the engine manages.
func (e *Engine) Collection() string {
	return e.config.CollectionName
}

// EnsureCollection asks the storage engine to create the managed
// collection. Creation is idempotent for the bundled storage engines.
func (e *Engine) EnsureCollection(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return e.storage.CreateCollection(ctx, e.config.CollectionName)
}

// Close flushes and stops the audit dispatcher. The engine must not be
// used afterwards.
func (e *Engine) Close() {
	e.audit.Close()
}

// AddUser registers one user document: callable fields are stripped,
// configured fields are generated, every declared unique key is checked,
// the password is hashed when hashing is enabled, and the record is
// persisted. Exactly one write happens on success and none on failure.
//
// The user map is mutated in place; the returned result carries the same
// map with all generated and hashed fields applied. Uniqueness violations
// are a domain failure (Success=false listing every violated key), not an
// error.
func (e *Engine) AddUser(ctx context.Context, user Document) (*RegistrationResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if user == nil {
		return nil, ErrUserRequired
	}

	stripCallables(user)
	e.applyAutoGenerate(user)

	var uniqKeysError []string
	for _, uniqKey := range e.config.UniqKeys {
		value := user[uniqKey]
		if !isPresent(value) {
			continue
		}
		exists, err := e.existsWithValue(ctx, uniqKey, value)
		if err != nil {
			return nil, err
		}
		if exists {
			uniqKeysError = append(uniqKeysError, uniqKey)
		}
	}

	if len(uniqKeysError) > 0 {
		e.metricInc(MetricRegisterConflict)
		e.emitAudit(ctx, auditEventRegisterConflict, false, "", errUniqueViolation, func() map[string]string {
			return map[string]string{"uniq_keys": strings.Join(uniqKeysError, ", ")}
		})
		return &RegistrationResult{
			Success:       false,
			Error:         errUniqueViolation,
			UniqKeysError: uniqKeysError,
		}, nil
	}

	if e.config.PasswordHash != nil {
		plain, ok := user[FieldPassword].(string)
		if !ok {
			return nil, ErrPasswordRequired
		}
		hash, err := e.hasher.Hash(plain)
		if err != nil {
			return nil, err
		}
		user[FieldPassword] = hash
	}

	if err := e.storage.AddDocument(ctx, e.config.CollectionName, user); err != nil {
		return nil, err
	}

	e.metricInc(MetricRegisterSuccess)
	e.emitAudit(ctx, auditEventRegisterSuccess, true, documentID(user), "", nil)

	return &RegistrationResult{
		Success: true,
		User:    user,
	}, nil
}

// errUniqueViolation is the single registration failure class.
const errUniqueViolation = "violation constraint unique key"

// existsWithValue scans every document in the collection for an exact
// match of doc[key]. O(collection size); this module targets
// small-to-medium embedded stores, not a large-scale index.
func (e *Engine) existsWithValue(ctx context.Context, key string, value any) (bool, error) {
	names, err := e.storage.ListDocumentNames(ctx, e.config.CollectionName)
	if err != nil {
		return false, err
	}

	for _, name := range names {
		doc, err := e.storage.FetchDocumentByName(ctx, e.config.CollectionName, name)
		if err != nil {
			return false, err
		}
		if valuesEqual(doc[key], value) {
			return true, nil
		}
	}

	return false, nil
}

// GetUserByID returns the first document whose id field matches, or nil
// when none does.
func (e *Engine) GetUserByID(ctx context.Context, id string) (Document, error) {
	users, err := e.GetUsersBy(ctx, Document{FieldID: id})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return users[0], nil
}

// GetUsersBy returns every document matching all matcher fields exactly
// (conjunction), in the storage engine's listing order.
func (e *Engine) GetUsersBy(ctx context.Context, matcher Document) ([]Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if matcher == nil {
		return nil, ErrMatcherRequired
	}

	names, err := e.storage.ListDocumentNames(ctx, e.config.CollectionName)
	if err != nil {
		return nil, err
	}

	var users []Document
	for _, name := range names {
		doc, err := e.storage.FetchDocumentByName(ctx, e.config.CollectionName, name)
		if err != nil {
			return nil, err
		}

		matches := true
		for attribute, expected := range matcher {
			if !valuesEqual(doc[attribute], expected) {
				matches = false
				break
			}
		}
		if matches {
			users = append(users, doc)
		}
	}

	return users, nil
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// MetricsSnapshot returns the current counter values. Empty when metrics
// are disabled.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	return e.metrics.Snapshot()
}

// stripCallables removes every function-valued field from user. Such
// values cannot be serialized into a document store.
func stripCallables(user Document) {
	for attribute, value := range user {
		if value != nil && reflect.TypeOf(value).Kind() == reflect.Func {
			delete(user, attribute)
		}
	}
}

// isPresent mirrors the truthiness gate on unique-key values: empty
// strings, zero numbers, false, and nil are treated as absent and skip the
// uniqueness scan.
func isPresent(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case int:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case float32:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

// valuesEqual is exact-equality comparison over open document values. It
// never panics on non-comparable values.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a).Comparable() && reflect.TypeOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func documentID(doc Document) string {
	id, _ := doc[FieldID].(string)
	return id
}
