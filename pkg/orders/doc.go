// Package orders generates mock redispatch orders and records order
// acknowledgements.
//
// The package provides order lifecycle support for the notification
// platform:
//
//   - Order Generation: Random but structurally complete redispatch
//     orders with items, series periods, and quantity points
//   - Order Lookup: Issued orders are retained in memory for detail
//     fetches through the REST surface
//   - Acknowledgement Recording: Submitted acknowledgements are written
//     to the audit store, duplicates included
//
// Order Identity:
//
// Order ids follow the "<sequence>/I/<dd.MM.yyyy>" scheme. The sequence
// is process-wide and monotonically increasing. Because the id embeds
// slashes, any URL carrying one must path-escape it exactly once; the
// stream package owns that encoding.
//
// Generation Rules:
//
// Each order covers a delivery period starting one hour from issuance
// (truncated to the hour) and lasting 12 to 48 hours. It carries one to
// three order items, each with a series period whose point count is
// derived from the period length and resolution: one point per day for
// P1D, per hour for PT60M, per quarter hour for PT15M. Quantity minima
// fall in [50, 150) and maxima exceed the minimum by 10 to 50.
//
// Usage:
//
//	svc := orders.NewService(store)
//	order := svc.GenerateOrder("ENT01")
//	detail, ok := svc.GetOrder(order.RedispatchOrderID)
package orders
