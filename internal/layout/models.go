package layout

// Alignment represents the horizontal alignment of a text block
type Alignment string

const (
	AlignLeft      Alignment = "left"
	AlignCenter    Alignment = "center"
	AlignRight     Alignment = "right"
	AlignJustified Alignment = "justified"
)

// Role represents the structural role of a fragment or paragraph
type Role string

const (
	RoleListMarker      Role = "list_marker"
	RoleLegalHeader     Role = "legal_header"
	RolePartyName       Role = "party_name"
	RoleVersusMarker    Role = "versus_marker"
	RoleRespondentItem  Role = "respondent_item"
	RoleSectionBoundary Role = "section_boundary"
	RoleBody            Role = "body"
)

// FontTier represents the derived size tier of a fragment
type FontTier string

const (
	TierTitle      FontTier = "title"
	TierHeading    FontTier = "heading"
	TierSubheading FontTier = "subheading"
	TierBodyText   FontTier = "body_text"
	TierSmall      FontTier = "small"
)

// Fragment is one positioned text span produced by the page extractor.
// Coordinates use a top-left origin: Y grows downward the page.
type Fragment struct {
	Text     string  `json:"text"`
	Page     int     `json:"page"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	FontSize float64 `json:"font_size"`
	Bold     bool    `json:"bold"`
	Italic   bool    `json:"italic"`
}

// Bottom returns the Y coordinate of the fragment's lower edge
func (f Fragment) Bottom() float64 {
	return f.Y + f.Height
}

// CenterX returns the horizontal center of the fragment
func (f Fragment) CenterX() float64 {
	return f.X + f.Width/2
}

// ClassifiedFragment is a Fragment with derived layout annotations.
// The underlying fragment is never modified.
type ClassifiedFragment struct {
	Fragment

	Alignment Alignment `json:"alignment"`
	Role      Role      `json:"role"`
	FontTier  FontTier  `json:"font_tier"`

	// Marker is the literal matched list marker (e.g. "1.", "(a)", "iv."),
	// empty unless Role is RoleListMarker or RoleRespondentItem.
	Marker string `json:"marker,omitempty"`

	// Emphasis derived from content heuristics, independent of the
	// extractor-reported font flags.
	Emphasized bool `json:"emphasized"`
	Underlined bool `json:"underlined"`
}

// LogicalUnit is a merged paragraph-level structure: a lead fragment plus
// the contiguous run of continuation fragments folded into it.
type LogicalUnit struct {
	Lead          ClassifiedFragment   `json:"lead"`
	Continuations []ClassifiedFragment `json:"continuations,omitempty"`

	// MergedText is the marker-stripped, single-space-normalized
	// concatenation of the lead and continuation texts.
	MergedText string    `json:"merged_text"`
	Role       Role      `json:"role"`
	Alignment  Alignment `json:"alignment"`
	Marker     string    `json:"marker,omitempty"`
}

// RenderedText returns the unit text with its marker emitted exactly once
func (u LogicalUnit) RenderedText() string {
	if u.Marker == "" {
		return u.MergedText
	}
	if u.MergedText == "" {
		return u.Marker
	}
	return u.Marker + " " + u.MergedText
}

// Paragraph is the descriptor handed to the document writer for one
// finalized paragraph. For list and respondent items Text excludes the
// marker; Marker carries it so the writer can choose between automatic
// numbering and literal marker text.
type Paragraph struct {
	Text        string    `json:"text"`
	Role        Role      `json:"role"`
	Alignment   Alignment `json:"alignment"`
	FontTier    FontTier  `json:"font_tier"`
	Bold        bool      `json:"bold"`
	Underline   bool      `json:"underline"`
	Marker      string    `json:"marker,omitempty"`
	IndentLevel int       `json:"indent_level,omitempty"`
}

// RenderedText returns the paragraph text with its marker emitted exactly once
func (p Paragraph) RenderedText() string {
	if p.Marker == "" {
		return p.Text
	}
	if p.Text == "" {
		return p.Marker
	}
	return p.Marker + " " + p.Text
}

// WarningCode identifies a class of recoverable layout anomaly
type WarningCode string

const (
	WarnMalformedFragment WarningCode = "malformed_fragment"
	WarnAmbiguousMarker   WarningCode = "ambiguous_marker"
	WarnUnterminatedList  WarningCode = "unterminated_list"
	WarnArtifactRemoved   WarningCode = "artifact_removed"
	WarnInvalidPattern    WarningCode = "invalid_pattern"
)

// Warning describes a recoverable anomaly encountered during layout
// reconstruction. Warnings accompany a successful result; they are never
// fatal to the run.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
	Page    int         `json:"page,omitempty"`
	Text    string      `json:"text,omitempty"`
}

// Stats summarizes a reconstruction run
type Stats struct {
	FragmentCount int          `json:"fragment_count"`
	UnitCount     int          `json:"unit_count"`
	PageCount     int          `json:"page_count"`
	RolesEmitted  map[Role]int `json:"roles_emitted"`
	ArtifactCount int          `json:"artifact_count"`
}

// Result is the output of one document reconstruction: the ordered
// paragraph stream plus any collected warnings.
type Result struct {
	Paragraphs []Paragraph   `json:"paragraphs"`
	Units      []LogicalUnit `json:"units,omitempty"`
	Warnings   []Warning     `json:"warnings,omitempty"`
	Stats      Stats         `json:"stats"`
}

// DetectionConfig configures the layout reconstruction heuristics. All
// thresholds were tuned empirically against scanned judgment corpora, so
// they are configuration rather than constants.
type DetectionConfig struct {
	// CenterTolerancePercent is the band around the page center (as a
	// percentage of page width) within which a fragment is centered.
	CenterTolerancePercent float64

	// JustifiedWidthRatio is the fraction of the page width a fragment
	// must cover to be considered justified body text.
	JustifiedWidthRatio float64

	// IndentThresholdPt is the minimum indent (in points) of a
	// continuation line relative to its list marker.
	IndentThresholdPt float64

	// MaxLineGapPt is the maximum vertical gap (in points) between a
	// continuation line and the line above it.
	MaxLineGapPt float64

	// TitleMarginPt is the top page margin within which short all-caps
	// text is promoted to the title tier.
	TitleMarginPt float64

	// PartyNameMaxLen is the length ceiling for the all-caps party name
	// heuristic.
	PartyNameMaxLen int

	// ListMarkerPatterns extends the built-in marker table. Entries are
	// evaluated after the built-ins; built-in precedence is fixed.
	ListMarkerPatterns []string

	// SectionBoundaryPatterns extends the built-in respondent/appellant
	// boundary table.
	SectionBoundaryPatterns []string

	// FilterArtifacts enables removal of repeated page headers/footers,
	// standalone page numbers and watermarks before classification.
	FilterArtifacts bool

	// ClassifyWorkers bounds the number of goroutines used for fragment
	// classification. Zero means GOMAXPROCS.
	ClassifyWorkers int
}

// DefaultDetectionConfig returns the configuration used in production
func DefaultDetectionConfig() DetectionConfig {
	return DetectionConfig{
		CenterTolerancePercent: 15,
		JustifiedWidthRatio:    0.85,
		IndentThresholdPt:      20,
		MaxLineGapPt:           30,
		TitleMarginPt:          150,
		PartyNameMaxLen:        50,
		FilterArtifacts:        true,
		ClassifyWorkers:        0,
	}
}
