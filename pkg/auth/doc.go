// Package auth implements a local username/password auth provider on top
// of the api client.
//
// SignIn posts credentials, pulls the access token out of the JSON answer
// with a JSON pointer and stores it, prefixed with its type, in a
// token.Store. Because the api client samples that store on every call,
// the next request after SignIn already carries the new token, and the
// next request after SignOut carries none.
//
// Defaults follow the backend contract:
//
//	sign in:     POST /auth/login   (token at /access_token)
//	sign out:    POST /auth/logout
//	get session: GET  /user/me
//	token type:  Bearer, max age 24h
package auth
