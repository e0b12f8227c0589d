// Package driven defines the interfaces the core depends on: relational
// stores, the normalised-text reader and the corpus LSH index. Adapters
// under internal/adapters/driven implement them.
package driven
