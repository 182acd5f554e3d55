package storage

// ApiStore is the read side of a ledger store: members, engagements and the journal.
type ApiStore interface {
	MemberReader
	EngagementReader
	LedgerReader
}
