package models

// WarningCode categorizes warnings by subsystem.
// W1xxx = stress mapping, W2xxx = allocation totals, W3xxx = input collection.
type WarningCode string

const (
	WarnUnmatchedAllocation  WarningCode = "W1001" // allocation contributes to no stress scenario
	WarnMultiMatchAllocation WarningCode = "W1002" // allocation contributes to more than one scenario
	WarnOverAllocated        WarningCode = "W2001" // allocations sum above 100% of NAV
	WarnInputDiscarded       WarningCode = "W3001" // non-numeric or non-positive weight dropped
	WarnConfidenceDefaulted  WarningCode = "W3002" // unknown confidence option replaced by the default
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
