// Package types defines the appointment, contact, and task entities, the
// field validation routines they share, the Table interface registries store
// entities in, and the error types returned by all of them.
package types
