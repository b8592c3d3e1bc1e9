package layout

// Composer walks the final ordered unit sequence and emits the paragraph
// descriptors consumed by the document writer. Numbering rendering
// (automatic vs. literal marker text) is the writer's decision; the
// composer only carries the marker and indent level through.
type Composer struct{}

// NewComposer creates a composer
func NewComposer() *Composer {
	return &Composer{}
}

// Compose emits one paragraph per unit, plus a blank separator paragraph
// after each versus divider.
func (c *Composer) Compose(units []LogicalUnit) []Paragraph {
	paragraphs := make([]Paragraph, 0, len(units))

	for _, unit := range units {
		p := Paragraph{
			Text:      unit.MergedText,
			Role:      unit.Role,
			Alignment: unit.Alignment,
			FontTier:  unit.Lead.FontTier,
			Bold:      paragraphBold(unit),
			Underline: unit.Lead.Underlined,
			Marker:    unit.Marker,
		}
		if unit.Marker != "" {
			p.IndentLevel = 1
		}
		paragraphs = append(paragraphs, p)

		if unit.Role == RoleVersusMarker {
			paragraphs = append(paragraphs, Paragraph{
				Role:      RoleBody,
				Alignment: AlignLeft,
				FontTier:  TierBodyText,
			})
		}
	}

	return paragraphs
}

// paragraphBold resolves the emphasis flag for a unit. Versus dividers,
// section boundaries, legal headers and party names are always bold in
// the output; body units keep whatever the content heuristics derived.
func paragraphBold(unit LogicalUnit) bool {
	switch unit.Role {
	case RoleVersusMarker, RoleSectionBoundary, RoleLegalHeader, RolePartyName:
		return true
	}
	return unit.Lead.Emphasized
}
