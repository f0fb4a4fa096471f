// Package ledger holds the client-side arithmetic of the billing workflow:
// the pending transaction and its totals, payment confirmation rules and
// balance adjustment planning. Nothing in here talks to the network.
package ledger
