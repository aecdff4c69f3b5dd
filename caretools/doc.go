// Package caretools exposes care-documentation lookups as model tools.
//
// Each Retriever resolves a client by name, finds the client's document of
// one type, fetches its payload and renders it as German text. Failures are
// reported to the model as fixed sentinel strings such as
// "error at api call" or "Client not found".
package caretools
