package layout

// sectionState tracks where the walk is relative to a "Versus" divider
type sectionState int

const (
	sectionIdle sectionState = iota
	sectionAwaitingParties
)

// sectionTracker specializes unit roles around versus dividers and the
// enumerated party lists that follow them. State is threaded through the
// ordered unit walk; each document run owns its own tracker, so runs stay
// independent and parallelizable at the document level.
type sectionTracker struct {
	state sectionState
}

// newSectionTracker starts in the idle state
func newSectionTracker() *sectionTracker {
	return &sectionTracker{state: sectionIdle}
}

// apply adjusts the unit in place and advances the state machine.
//
// A versus divider is emitted centered and emphasized, and opens the
// party list: every following marker-rooted unit is a respondent item,
// forced left regardless of its measured alignment, until a section
// boundary or a new legal header closes the list.
func (t *sectionTracker) apply(unit *LogicalUnit) {
	switch unit.Role {
	case RoleVersusMarker:
		unit.Alignment = AlignCenter
		unit.Lead.Emphasized = true
		t.state = sectionAwaitingParties

	case RoleListMarker:
		if t.state == sectionAwaitingParties {
			unit.Role = RoleRespondentItem
			unit.Alignment = AlignLeft
		}

	case RoleSectionBoundary:
		unit.Lead.Emphasized = true
		t.state = sectionIdle

	case RoleLegalHeader:
		t.state = sectionIdle
	}
}
