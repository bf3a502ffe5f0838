package engine

type SuspicionRef struct {
	Points int
	Reason string
}

// Mutable container for all the possible side-effects from rule execution.
// Collected while rules run, persisted in bulk afterwards.
type Effects struct {
	// Suspicion score increments to apply at the end of rule processing,
	// each tagged with the rule's reason label for the audit log.
	SuspicionIncrements []SuspicionRef
	// Moderation flags to attach to the account.
	AccountFlags []string
}

// Enqueues a suspicion score increment to be applied at the end of rule
// processing. Points must be positive; the score is clamped when persisted.
func (e *Effects) IncrementSuspicion(points int, reason string) {
	e.SuspicionIncrements = append(e.SuspicionIncrements, SuspicionRef{Points: points, Reason: reason})
}

// Enqueues the provided flag (string value) to be recorded against the
// account at the end of rule processing.
func (e *Effects) AddAccountFlag(val string) {
	e.AccountFlags = append(e.AccountFlags, val)
}
