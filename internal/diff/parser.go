package diff

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParseError reports diff text that does not conform to unified-diff
// syntax. Line is 1-based into the diff text itself, not into any file.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("diff parse error at line %d: %s: %q", e.Line, e.Reason, e.Text)
}

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@ ?(.*)$`)

// fileHeaderPrefixes are extended header lines git emits between the
// "diff --git" line and the first hunk. They carry flags we care about
// (new/deleted/binary/rename) or metadata we skip.
var skipHeaderPrefixes = []string{
	"index ",
	"old mode ",
	"new mode ",
	"similarity index ",
	"dissimilarity index ",
	"copy from ",
	"copy to ",
}

// Parse converts unified diff text into an ordered sequence of files. It
// fails with *ParseError on the first nonconforming line; there is no
// partial recovery.
func Parse(text string) ([]File, error) {
	var files []File
	var cur *File
	var hunk *Hunk
	oldN, newN := 0, 0

	flushHunk := func() {
		if cur != nil && hunk != nil {
			cur.Hunks = append(cur.Hunks, *hunk)
			hunk = nil
		}
	}
	flushFile := func() {
		flushHunk()
		if cur != nil {
			files = append(files, *cur)
			cur = nil
		}
	}

	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		lineNo := i + 1
		last := i == len(lines)-1

		switch {
		case strings.HasPrefix(ln, "diff --git "):
			flushFile()
			f, err := parseFileHeader(ln, lineNo)
			if err != nil {
				return nil, err
			}
			cur = f
			oldN, newN = 0, 0

		case cur == nil:
			// Tolerate blank leading lines only; a diff must open with a
			// file header.
			if strings.TrimSpace(ln) == "" {
				continue
			}
			return nil, &ParseError{Line: lineNo, Text: ln, Reason: "expected file header"}

		case hunkHeaderRe.MatchString(ln):
			flushHunk()
			h, err := parseHunkHeader(ln, lineNo)
			if err != nil {
				return nil, err
			}
			hunk = h
			oldN, newN = h.OldStart, h.NewStart

		case hunk != nil:
			switch {
			case strings.HasPrefix(ln, "+"):
				hunk.Lines = append(hunk.Lines, Line{Type: Added, Content: ln[1:], NewLine: newN})
				newN++
			case strings.HasPrefix(ln, "-"):
				hunk.Lines = append(hunk.Lines, Line{Type: Removed, Content: ln[1:], OldLine: oldN})
				oldN++
			case strings.HasPrefix(ln, " "):
				hunk.Lines = append(hunk.Lines, Line{Type: Context, Content: ln[1:], OldLine: oldN, NewLine: newN})
				oldN++
				newN++
			case strings.HasPrefix(ln, `\`):
				// "\ No newline at end of file" — metadata, not a change line.
			case ln == "":
				if last {
					continue // trailing newline from the final split
				}
				// Some transports strip the leading space from empty
				// context lines; count it as context.
				hunk.Lines = append(hunk.Lines, Line{Type: Context, OldLine: oldN, NewLine: newN})
				oldN++
				newN++
			case strings.HasPrefix(ln, "diff "):
				return nil, &ParseError{Line: lineNo, Text: ln, Reason: "malformed file header"}
			default:
				return nil, &ParseError{Line: lineNo, Text: ln, Reason: "unexpected line in hunk"}
			}

		// File header region, before the first hunk of the current file.
		case strings.HasPrefix(ln, "Binary files ") || ln == "GIT binary patch":
			cur.IsBinary = true
		case strings.HasPrefix(ln, "new file mode "):
			cur.IsNew = true
		case strings.HasPrefix(ln, "deleted file mode "):
			cur.IsDeleted = true
		case strings.HasPrefix(ln, "rename from "):
			cur.IsRename = true
			cur.OldPath = strings.TrimPrefix(ln, "rename from ")
		case strings.HasPrefix(ln, "rename to "):
			cur.IsRename = true
			cur.Path = strings.TrimPrefix(ln, "rename to ")
		case strings.HasPrefix(ln, "--- "):
			if p, ok := stripPathPrefix(ln[4:], "a/"); ok {
				cur.OldPath = p
			} else {
				cur.IsNew = true // --- /dev/null
			}
		case strings.HasPrefix(ln, "+++ "):
			if p, ok := stripPathPrefix(ln[4:], "b/"); ok {
				cur.Path = p
			} else {
				// +++ /dev/null: the file was deleted, keep the old path.
				cur.IsDeleted = true
				cur.Path = cur.OldPath
			}
		case hasAnyPrefix(ln, skipHeaderPrefixes):
			// Metadata we don't need.
		case strings.TrimSpace(ln) == "" && last:
			// Trailing newline.
		case strings.HasPrefix(ln, "@@"):
			return nil, &ParseError{Line: lineNo, Text: ln, Reason: "malformed hunk header"}
		default:
			return nil, &ParseError{Line: lineNo, Text: ln, Reason: "unexpected line in file header"}
		}
	}
	flushFile()
	return files, nil
}

// parseFileHeader extracts the default paths from a "diff --git a/X b/Y"
// line. The ---/+++/rename lines that follow may refine them.
func parseFileHeader(ln string, lineNo int) (*File, error) {
	rest := strings.TrimPrefix(ln, "diff --git ")
	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return nil, &ParseError{Line: lineNo, Text: ln, Reason: "malformed file header"}
	}
	oldPath, _ := stripPathPrefix(fields[0], "a/")
	newPath, _ := stripPathPrefix(fields[len(fields)-1], "b/")
	if newPath == "" {
		return nil, &ParseError{Line: lineNo, Text: ln, Reason: "malformed file header"}
	}
	return &File{Path: newPath, OldPath: oldPath}, nil
}

func parseHunkHeader(ln string, lineNo int) (*Hunk, error) {
	m := hunkHeaderRe.FindStringSubmatch(ln)
	if m == nil {
		return nil, &ParseError{Line: lineNo, Text: ln, Reason: "malformed hunk header"}
	}
	h := &Hunk{
		OldStart: atoiDefault(m[1], 0),
		OldCount: atoiDefault(m[2], 1),
		NewStart: atoiDefault(m[3], 0),
		NewCount: atoiDefault(m[4], 1),
		Section:  m[5],
	}
	return h, nil
}

// stripPathPrefix removes the a/ or b/ prefix from a diff path. Returns
// ok=false for /dev/null.
func stripPathPrefix(p, prefix string) (string, bool) {
	p = strings.TrimSpace(p)
	if p == "/dev/null" {
		return "", false
	}
	p = strings.Trim(p, `"`)
	return strings.TrimPrefix(p, prefix), true
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
