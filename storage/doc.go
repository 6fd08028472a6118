// Package storage defines the vector storage interfaces used by the
// indexing and search layers, along with collection naming helpers and
// the sentinel errors storage backends return.
//
// The interfaces are deliberately small: a VectorStore manages named
// collections, and a Collection holds embedded chunks and answers
// nearest-neighbor queries. The bundled BadgerDB implementation lives in
// the badger subpackage; alternative backends only need to satisfy these
// interfaces.
package storage
