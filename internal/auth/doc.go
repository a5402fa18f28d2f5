// ABOUTME: Package doc for the authentication pipeline
// ABOUTME: Explains token flow, failure taxonomy, and the 404/401 asymmetry

/*
Package auth implements the session pipeline: password hashing, signed
token issuance and verification, token transport over the Authorization
header and the access-token cookie, and the HTTP guard middleware that
protected routes hang off.

Control flow for a guarded request:

	ExtractToken -> Codec.Decode -> directory lookup -> Identity in context

Each stage fails with a distinct sentinel so callers can react per kind:

	ErrNoToken        no usable token in the request (401 + challenge)
	ErrTokenInvalid   token present but expired, tampered, or missing
	                  its subject claim (401 + challenge)
	ErrUserNotFound   credentials or subject do not resolve to an employee
	ErrWrongPassword  employee exists, password hash mismatch (401)

Anything else coming out of the directory is an infrastructure failure
and surfaces as a 5xx, never as an authentication failure.

One deliberate inconsistency is preserved from the previous system: an
unknown username answers 404 on the login path but 401 on the token
verification path. Both call sites lean on ErrUserNotFound; the status
split lives in the HTTP layer.

Tokens are stateless and unrevocable. Logout deletes the cookie; the
token itself stays valid until its expiry instant.
*/
package auth
