package goUsers

import "context"

// Document is one persisted user record: an open field-to-value mapping.
// Reserved field names are [FieldID], [FieldCreateAt], [FieldToken], and
// [FieldPassword]; everything else is caller-defined.
type Document map[string]any

// Reserved document field names.
const (
	// FieldID is the auto-generated opaque unique identifier.
	FieldID = "id"
	// FieldCreateAt is the auto-generated creation timestamp, epoch millis.
	FieldCreateAt = "createAt"
	// FieldToken is the auto-generated opaque random token.
	FieldToken = "token"
	// FieldPassword holds the plaintext password at input time and the
	// bcrypt hash after registration when hashing is enabled.
	FieldPassword = "password"
	// FieldEmail is the field a bare "login" credential is resolved
	// against.
	FieldEmail = "email"
)

// Storage is the capability contract required of the document-store
// collaborator. The engine depends on this interface only; it never sees a
// storage engine's internal format.
//
// ListDocumentNames returns the names of every document in a collection in
// the engine's listing order; an unknown collection yields an empty list.
// FetchDocument resolves a document name anywhere in the store, while
// FetchDocumentByName scopes the lookup to one collection; the engine reads
// through the scoped form.
type Storage interface {
	ListDocumentNames(ctx context.Context, collection string) ([]string, error)
	CreateCollection(ctx context.Context, name string) error
	AddDocument(ctx context.Context, collection string, doc Document) error
	FetchDocument(ctx context.Context, name string) (Document, error)
	FetchDocumentByName(ctx context.Context, collection, name string) (Document, error)
}

// UserService is the user-facing surface the [Engine] layers on top of a
// [Storage]. A storage object that already exposes any of these method
// names carries a foreign users implementation and is rejected at
// [Builder.Build] time.
type UserService interface {
	AddUser(ctx context.Context, user Document) (*RegistrationResult, error)
	Authentication(ctx context.Context, credentials Document) (*AuthenticationResult, error)
	GetUserByID(ctx context.Context, id string) (Document, error)
	GetUsersBy(ctx context.Context, matcher Document) ([]Document, error)
}

// RegistrationResult is returned by [Engine.AddUser]. Domain failures
// (uniqueness violations) are reported here with Success=false, never as Go
// errors.
type RegistrationResult struct {
	Success bool `json:"success"`

	// Error is set on failure; the only registration failure class is
	// "violation constraint unique key".
	Error string `json:"error,omitempty"`

	// UniqKeysError lists every declared unique key whose value already
	// exists in the collection. All violated keys are collected, not just
	// the first.
	UniqKeysError []string `json:"uniqKeysError,omitempty"`

	// User is the persisted record on success, with generated fields
	// applied and the password replaced by its hash when hashing is
	// enabled.
	User Document `json:"user,omitempty"`
}

// Muted error classifications carried by [AuthenticationResult.ErrorMuted].
// They let callers surface a coarse failure class externally without
// leaking the detailed Error string.
const (
	// ErrorMutedCredentials classifies login-not-found and
	// password-mismatch failures.
	ErrorMutedCredentials = "credentials error"
	// ErrorMutedReject classifies constraint-blocked failures, kept
	// distinct so authorization state is never conflated with credential
	// validity.
	ErrorMutedReject = "authentication reject"
)

// AuthenticationResult is returned by [Engine.Authentication].
type AuthenticationResult struct {
	// IsLoginExists reports whether any document matched the resolved
	// login field, regardless of the password outcome.
	IsLoginExists bool `json:"isLoginExists"`

	Success bool `json:"success"`

	// Error is the detailed failure message. Its wording is deliberately
	// symmetric between unknown-login and wrong-password so the message
	// alone does not distinguish them.
	Error string `json:"error,omitempty"`

	// ErrorMuted is [ErrorMutedCredentials] or [ErrorMutedReject].
	ErrorMuted string `json:"errorMuted,omitempty"`

	// ConstraintsAuthentication lists every constraint key that blocked
	// an otherwise valid login.
	ConstraintsAuthentication []string `json:"constraintsAuthentication,omitempty"`

	// User is the full matched document, present only on success.
	User Document `json:"user,omitempty"`

	// SessionToken is a signed token for the matched user, present only
	// on success and only when session tokens are configured.
	SessionToken string `json:"sessionToken,omitempty"`
}
