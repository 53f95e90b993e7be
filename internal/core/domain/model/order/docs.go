// Package order provides the Order aggregate (pedido) and its lifecycle.
//
// The package includes:
//   - Order: created once at checkout, afterwards mutated only through status changes
//   - Item: an immutable order line priced at order time
//   - Status: the closed set of lifecycle states
//   - FulfillmentMode: ENTREGA (delivery) or RETIRADA (pickup)
//   - the transition table deciding which guided status changes are legal
//
// Legal next states depend on both the current status and the fulfillment mode:
//
//	NOVO ──> EM_PREPARO ──(ENTREGA)──────────────────────> FINALIZADO
//	  │           │ └─────(RETIRADA)─> AGUARDANDO_CLIENTE ──┘
//	  │           └──────────┬───────────────┘
//	  v                      v
//	RECUSADO        CANCELADO_FORNECEDOR
//
// FINALIZADO, RECUSADO and CANCELADO_FORNECEDOR are terminal. A manual override
// may still move an order to any status; it bypasses the table entirely.
package order
