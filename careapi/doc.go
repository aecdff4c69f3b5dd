// Package careapi is a client for the care-documentation REST API.
//
// It resolves a client by name, finds the usable document of a given type
// for that client, and fetches the document's detail payload. Every request
// carries a bearer token from an auth.TokenSource.
package careapi
