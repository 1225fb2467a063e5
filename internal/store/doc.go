// Package store provides abstractions for data persistence. Implementations
// live under internal/platform; services and tasks depend only on the
// interfaces defined here.
package store
