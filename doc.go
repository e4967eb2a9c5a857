// Package goUsers provides a storage-agnostic user-account engine: field
// auto-generation, per-field uniqueness enforcement, bcrypt password policy,
// and multi-stage credential authentication over any document store that
// implements the [Storage] capability contract.
//
// The package is a library, not a service. It owns no persistence and no
// transport: callers supply a [Storage] (one of the bundled
// storage/memstore and storage/redistore engines, or their own) through
// [Builder.WithStorage], and the resulting [Engine] is the single entry
// point for AddUser, Authentication, GetUserByID, and GetUsersBy.
//
// # Architecture boundaries
//
// goUsers is the public surface. It exposes [Engine], [Builder], [Config],
// the [Storage] capability interface, and value result types
// ([RegistrationResult], [AuthenticationResult], [MetricsSnapshot]).
// Password hashing lives in the password subpackage, signed session tokens
// in the token subpackage, bundled storage engines under storage/.
//
// # What this package must NOT do
//
//   - Mutate or delete persisted documents; it only creates and reads them.
//   - Reach into a storage engine beyond the five capability methods.
//   - Verify session tokens; it only generates them (token subpackage).
//
// # Concurrency contract
//
// Engine methods perform sequential scans over the storage listing with no
// internal parallelism. Registration is check-then-write without a
// transaction: the uniqueness guarantee assumes one logical writer per
// collection, or external serialization provided by the host. Storage
// engines decide their own listing order; the engine neither sorts nor
// deduplicates it.
package goUsers
