// Package catalog holds the immutable snapshots of catalog data that the
// ordering domain carries around: the Supplier (fornecedor) and the Dish as it
// looked when a customer put it in the cart. The catalog itself (listing,
// editing, images) lives elsewhere.
package catalog
