// Package kernel provides core domain primitives for the marketplace system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package currently provides UUID, a value object for unique identifiers
// with validation and comparison capabilities. Identifiers are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
