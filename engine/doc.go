// Abuse detection and auto-moderation rules engine for the Six Oracle chat
// service.
//
// This package contains a "rules engine" which inspects every incoming chat
// message for signs of automated or abusive behavior. Per-user activity
// windows, suspicion scores, and violation counters are maintained in
// pluggable stores (in-process or redis), which drive rule invocations. The
// outcome of rules is a bounded suspicion score; crossing the threshold
// blocks the account (a one-way transition, reported to the durable account
// store) and dispatches a best-effort alert to the service owner.
//
// See `cmd/omamori` for a daemon built on this package.
package engine
