// Package token holds the auth token that outgoing requests carry.
//
// A Source is read once per request, at the moment the request's transport
// instance is created, so replacing the value in a Cell or FileStore takes
// effect on the very next call without rebuilding any client.
//
// # Sources
//
//   - [Static]: a fixed value
//   - [Func]: a getter callback
//   - [Cell]: an in-memory mutable value with optional expiry
//   - [FileStore]: a Cell persisted to a TOML file and kept in sync with it
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package token
