package engine

// AccountMeta is a snapshot of the account fields rules may want to look at.
// Populated from the account store when the event enters the engine; an
// unknown user gets a zero-value meta with just the ID filled in.
type AccountMeta struct {
	UserID      string
	DisplayName string
	Blocked     bool
}
