// Package mock provides deterministic test doubles for the ai interfaces.
//
// All mocks support behavior injection via function fields and fall back to
// simple deterministic defaults, so tests can run without any AI backend.
package mock
