package email

const (
	subjectReleaseSummaryFmt   = "%d prospects returned to the unassigned pool"
	subjectProspectAssignedFmt = "New prospect assigned: %s"
)
