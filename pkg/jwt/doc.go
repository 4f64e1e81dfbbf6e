// Package jwt provides stateless HS256 session tokens: generation, parsing
// with constant-time signature verification and algorithm pinning, and HTTP
// middleware that gates handlers on a valid, unexpired token.
package jwt
