package goUsers

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// fieldPlainPassword is the secondary secret field accepted alongside
// password; password takes precedence when both carry a string.
const fieldPlainPassword = "plainPassword"

// resolvedLogin identifies which credential field names the account and
// the value to look for.
type resolvedLogin struct {
	keyName string
	value   string
}

// authDecision is the internal decision record the single-pass scan fills
// in and buildAuthenticationResponse maps to the caller-facing result.
type authDecision struct {
	login  resolvedLogin
	secret string

	loginExists        bool
	passwordMatch      bool
	constraintsBlocked bool
	blockedConstraints []string
	user               Document
}

// Authentication runs the login -> password -> constraint decision
// sequence over the collection and returns a structured outcome. Domain
// failures (unknown login, wrong password, constraint block) are reported
// in the result, never as Go errors; errors are reserved for malformed
// input and storage faults.
//
// The scan is a single forward pass. When several documents carry the same
// login value, uniqueness being advisory here, the last qualifying match
// wins.
func (e *Engine) Authentication(ctx context.Context, credentials Document) (*AuthenticationResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if credentials == nil {
		return nil, ErrCredentialsRequired
	}

	secret, err := resolveSecret(credentials)
	if err != nil {
		return nil, err
	}
	login, err := resolveLogin(credentials)
	if err != nil {
		return nil, err
	}

	decision := authDecision{login: login, secret: secret}

	names, err := e.storage.ListDocumentNames(ctx, e.config.CollectionName)
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		doc, err := e.storage.FetchDocumentByName(ctx, e.config.CollectionName, name)
		if err != nil {
			return nil, err
		}
		if !valuesEqual(doc[login.keyName], login.value) {
			continue
		}

		decision.loginExists = true
		decision.passwordMatch = e.secretMatches(secret, doc)

		for _, keyConstraint := range e.constraintKeys() {
			if !valuesEqual(doc[keyConstraint], e.config.ConstraintsAuthentication[keyConstraint]) {
				decision.constraintsBlocked = true
				decision.blockedConstraints = append(decision.blockedConstraints, keyConstraint)
			}
		}

		if decision.passwordMatch && !decision.constraintsBlocked {
			decision.user = doc
		}
	}

	response := buildAuthenticationResponse(decision)

	switch {
	case response.Success:
		if e.tokens != nil {
			sessionToken, err := e.tokens.Issue(documentID(response.User))
			if err != nil {
				return nil, err
			}
			response.SessionToken = sessionToken
		}
		e.metricInc(MetricAuthSuccess)
		e.emitAudit(ctx, auditEventAuthSuccess, true, documentID(response.User), "", func() map[string]string {
			return map[string]string{"login_key": login.keyName}
		})
	case response.ErrorMuted == ErrorMutedReject:
		e.metricInc(MetricAuthReject)
		e.emitAudit(ctx, auditEventAuthReject, false, "", response.Error, func() map[string]string {
			return map[string]string{"constraints": strings.Join(response.ConstraintsAuthentication, ", ")}
		})
	default:
		e.metricInc(MetricAuthFailure)
		e.emitAudit(ctx, auditEventAuthFailure, false, "", response.Error, func() map[string]string {
			return map[string]string{"login_key": login.keyName}
		})
	}

	return response, nil
}

// secretMatches verifies the supplied secret against the stored password
// field: bcrypt when hashing is enabled, exact string equality otherwise.
func (e *Engine) secretMatches(secret string, doc Document) bool {
	stored, ok := doc[FieldPassword].(string)
	if !ok {
		return false
	}
	if e.hasher != nil {
		return e.hasher.Verify(secret, stored)
	}
	return stored == secret
}

// constraintKeys returns the configured constraint keys in a stable order
// so failure listings do not vary between calls.
func (e *Engine) constraintKeys() []string {
	if len(e.config.ConstraintsAuthentication) == 0 {
		return nil
	}
	keys := make([]string, 0, len(e.config.ConstraintsAuthentication))
	for key := range e.config.ConstraintsAuthentication {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// resolveLogin determines which credential field identifies the account.
// password and plainPassword are reserved; of the remaining fields exactly
// one must be present. A bare login field is compared against the email
// document field.
//
// More than one candidate field is rejected outright: map iteration order
// would otherwise silently decide which one wins.
func resolveLogin(credentials Document) (resolvedLogin, error) {
	var candidates []string
	for attribute := range credentials {
		if attribute == FieldPassword || attribute == fieldPlainPassword {
			continue
		}
		candidates = append(candidates, attribute)
	}

	switch len(candidates) {
	case 0:
		return resolvedLogin{}, ErrLoginMissing
	case 1:
	default:
		sort.Strings(candidates)
		return resolvedLogin{}, fmt.Errorf("%w: %s", ErrAmbiguousLogin, strings.Join(candidates, ", "))
	}

	keyName := candidates[0]
	value, ok := credentials[keyName].(string)
	if !ok {
		return resolvedLogin{}, ErrLoginNotString
	}

	if keyName == "login" {
		keyName = FieldEmail
	}

	return resolvedLogin{keyName: keyName, value: value}, nil
}

// resolveSecret extracts the plaintext secret: password when it holds a
// string, plainPassword otherwise.
func resolveSecret(credentials Document) (string, error) {
	if secret, ok := credentials[FieldPassword].(string); ok {
		return secret, nil
	}
	if secret, ok := credentials[fieldPlainPassword].(string); ok {
		return secret, nil
	}
	return "", ErrSecretNotString
}

// buildAuthenticationResponse is the pure mapping from the decision record
// to the caller-facing shape.
//
// The unknown-login and wrong-password messages share the "not exists"
// wording on purpose; only the IsLoginExists flag distinguishes them.
// Constraint blocks get their own error class so authorization state is
// never conflated with credential validity.
func buildAuthenticationResponse(decision authDecision) *AuthenticationResult {
	response := &AuthenticationResult{
		IsLoginExists: decision.loginExists,
	}

	if !decision.passwordMatch {
		response.Success = false
		if !decision.loginExists {
			response.Error = fmt.Sprintf("%q with value: %q, not exists",
				decision.login.keyName, decision.login.value)
		} else {
			response.Error = fmt.Sprintf("couple: (%s, %s) not exists",
				decision.login.value, decision.secret)
		}
	} else if !decision.constraintsBlocked {
		response.Success = true
	} else {
		response.Success = false
		response.Error = fmt.Sprintf("constraints: %q have blocked authentication",
			strings.Join(decision.blockedConstraints, ", "))
		response.ConstraintsAuthentication = decision.blockedConstraints
	}

	if response.Error != "" {
		if decision.constraintsBlocked {
			response.ErrorMuted = ErrorMutedReject
		} else {
			response.ErrorMuted = ErrorMutedCredentials
		}
	}

	if response.Success {
		response.User = decision.user
	}

	return response
}
