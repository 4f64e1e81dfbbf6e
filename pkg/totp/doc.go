// Package totp implements time-based one-time passwords per RFC 4226 and
// RFC 6238: secret generation, provisioning URI construction for
// authenticator apps, code derivation and verification with a one-step
// drift window, plus AES-256-GCM helpers for persisting secrets encrypted.
//
// Verification compares codes in constant time. No replay tracking happens
// at this level; callers that need single-use semantics must layer it on top.
//
// Inspect failures with errors.Is against the package sentinels such as
// ErrInvalidSecret and ErrInvalidCode.
package totp
