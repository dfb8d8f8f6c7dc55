// Package store provides local persistence for liendesk.
//
// It contains concrete implementations of the domain storage interfaces:
//   - Wizard draft snapshots (FileDraftStore, SQLiteDraftStore,
//     RedisDraftStore, MemoryDraftStore), all keyed by domain.DraftKey;
//     the Redis key carries the account id
//   - The authenticated session (SessionFileStore), sealed with
//     scrypt + XChaCha20-Poly1305 under the user's passphrase
//
// File-backed stores write atomically through a temp file and rename, and
// are concurrency-safe via internal locking. Stored files live under the
// configured home directory.
package store
