package goUsers

import "errors"

var (
	// ErrStorageRequired is returned by Build when no storage capability
	// was supplied.
	ErrStorageRequired = errors.New("storage capability required")
	// ErrStorageConflict is returned by Build when the storage object
	// already exposes a users interface of its own.
	ErrStorageConflict = errors.New("storage already implements a users interface")
	// ErrAutoGenerateUnknown is returned by Build when AutoGenerate names
	// a field outside the id/createAt/token allow-list.
	ErrAutoGenerateUnknown = errors.New("autoGenerate field not recognized")
	// ErrTokenSigningKeyRequired is returned by Build when session tokens
	// are enabled without a signing key.
	ErrTokenSigningKeyRequired = errors.New("session tokens require a signing key")

	// ErrUserRequired is returned by AddUser for a nil user document.
	ErrUserRequired = errors.New("addUser requires a user document")
	// ErrPasswordRequired is returned by AddUser when hashing is enabled
	// and the user document carries no string password.
	ErrPasswordRequired = errors.New("user password must be a string when hashing is enabled")

	// ErrCredentialsRequired is returned by Authentication for a nil
	// credentials document.
	ErrCredentialsRequired = errors.New("authentication requires a credentials document")
	// ErrLoginMissing is returned when the credentials carry no login
	// field at all.
	ErrLoginMissing = errors.New("credentials contain no login field")
	// ErrAmbiguousLogin is returned when the credentials carry more than
	// one candidate login field. Single-field login is a hard
	// precondition; map iteration order would otherwise decide which
	// field wins.
	ErrAmbiguousLogin = errors.New("credentials contain more than one login field")
	// ErrLoginNotString is returned when the resolved login value is not
	// a string.
	ErrLoginNotString = errors.New("login value must be a string")
	// ErrSecretNotString is returned when neither password nor
	// plainPassword holds a string secret.
	ErrSecretNotString = errors.New("password must be a string")

	// ErrMatcherRequired is returned by GetUsersBy for a nil matcher.
	ErrMatcherRequired = errors.New("getUsersBy requires a matcher document")
)
