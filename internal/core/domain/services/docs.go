// Package services holds stateless domain services that work across order
// aggregates without belonging to any one of them.
//
// The package includes:
//   - StatusBoard: partitions a supplier's orders into the five display lanes
//     and computes the guided actions and overrides for each card
//   - SummaryFormatter: renders an order as a URL-escaped message for the
//     customer's messaging channel
package services
