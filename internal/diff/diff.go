package diff

// LineType classifies one line of a hunk.
type LineType int

const (
	Context LineType = iota
	Added
	Removed
)

func (t LineType) String() string {
	switch t {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "context"
	}
}

// Line is a single line of a hunk. NewLine is set (>0) only for added and
// context lines; OldLine only for removed and context lines. NewLine is the
// coordinate annotations anchor to.
type Line struct {
	Type    LineType
	Content string
	OldLine int
	NewLine int
}

// Hunk is one contiguous change region. Lines appear in diff order, which
// is what makes the running line counters reconstructible.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Section  string
	Lines    []Line
}

// File is the parsed change set for one file in the diff. Path is the new
// path (the old path for deletions); OldPath differs from Path only for
// renames and copies. Binary files carry no hunks.
type File struct {
	Path      string
	OldPath   string
	Hunks     []Hunk
	IsBinary  bool
	IsNew     bool
	IsDeleted bool
	IsRename  bool
}
