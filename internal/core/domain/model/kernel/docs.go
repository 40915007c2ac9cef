// Package kernel provides core domain primitives for the delivery marketplace.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - GeoPoint: a WGS84 coordinate pair with Haversine distance calculation
//   - Address: a structured delivery address with its geocoded point
//   - Money: a positive monetary amount fixed in cents
//   - Actor and Role: the explicit identity threaded through every core call
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
