// Package usecase contains the application operations that mutate the
// dock layout. Entities stay pure; every structural change to the tree
// goes through a use case here.
package usecase

// IDGenerator is a function that generates unique IDs for groups and
// split nodes. Wired at construction so tests can use deterministic IDs.
type IDGenerator func() string
