// Package kernel provides the shared value objects of the marketplace domain.
//
// The package includes:
//   - UUID: identifier for orders, dishes and suppliers
//   - Money: a non-negative amount in centavos with BRL formatting
//
// Both are immutable; their zero values are invalid and must be obtained
// through the constructors.
package kernel
