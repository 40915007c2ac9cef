// Package services provides domain services that operate across aggregates.
//
// The package includes:
//   - CourierSelector: ranks available couriers by proximity to a pickup origin
package services
