// Package domain holds the core entities and the pure business rules of the
// Q&A platform: the rating ledger, vote aggregation, the answer acceptance
// state machine, and the reputation events they emit. It has no dependencies
// on storage or transport; repositories load rows, call into this package,
// and persist whatever comes back in the same transaction.
package domain
