// Package order provides the order aggregate and its lifecycle state machine.
//
// An order is placed by a buyer against one product, starts Pending, and
// moves forward through Shipped to Delivered, or sideways to Cancelled.
// Delivered and Cancelled are terminal states: once reached, the order is
// immutable. The aggregate freezes the total price at creation time and
// leaves stock bookkeeping to the inventory ledger, which the application
// layer coordinates within the same transaction.
package order
