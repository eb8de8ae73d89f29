// Package delivery contains the Delivery aggregate root, its lifecycle
// state machine, and the append-only timeline audit log.
//
// A Delivery is created for exactly one paid order with order data copied
// at creation time (snapshot semantics). Its status follows a strict state
// machine (pending -> assigned -> out_for_delivery -> delivered, with
// cancellation reachable from every non-terminal state), and every
// successful transition produces exactly one TimelineEvent. The aggregate
// accumulates uncommitted events in memory so the persistence layer can
// write the status change and its timeline entries in one transaction.
package delivery
