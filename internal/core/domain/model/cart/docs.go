// Package cart implements the shopping cart aggregate.
//
// A Cart holds (dish, quantity) lines that all belong to exactly one supplier.
// The bound supplier is nil if and only if the cart is empty. Adding a dish
// from a different supplier never mixes suppliers: the cart is left untouched
// and the dish is parked as a pending conflict until the customer either
// confirms starting a new cart (destructive replace) or declines (candidate
// dropped).
//
// The aggregate is a plain owned value without internal locking; callers
// serialize access per cart session and persist the state after every
// mutation.
package cart
