// CLAUDE:SUMMARY Extraction outcome tiers for a result sheet: Complete, NameOnly, Unparseable.
package sheet

// Status classifies how much of a result sheet could be recovered.
type Status int

const (
	// Complete means both the student name and a grade score were found.
	Complete Status = iota
	// NameOnly means the name was recovered but no SGPA/CGPA token matched.
	NameOnly
	// Unparseable means the sheet yielded neither field (including
	// undecodable PDF bytes).
	Unparseable
)

// NameNotFound is the sentinel used when no name label exists anywhere
// in the sheet. Distinguishable from any genuine student name.
const NameNotFound = "NAME_NOT_FOUND"

// Result is the outcome of extracting one result sheet.
type Result struct {
	Status Status
	Name   string
	SGPA   float64 // set only for Complete
}
