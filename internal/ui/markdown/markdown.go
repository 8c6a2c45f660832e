// Package markdown renders briefs and explanations for the terminal.
// Diagram fences are pulled out first and drawn as framed panels; the
// remaining markdown is rendered with glamour.
package markdown

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/abhisek/learnlab/internal/ui/theme"
)

// BlockKind distinguishes prose from diagram source.
type BlockKind int

const (
	KindMarkdown BlockKind = iota
	KindDiagram
)

// Block is a contiguous piece of a document.
type Block struct {
	Kind BlockKind
	Text string
}

var (
	mermaidOpen = regexp.MustCompile("^\\s*```\\s*mermaid\\s*$")
	fenceLine   = regexp.MustCompile("^\\s*(```|~~~)")
)

// Split separates mermaid blocks from the surrounding markdown. Other fenced
// code blocks stay in the markdown. An unterminated diagram runs to the end.
func Split(src string) []Block {
	var (
		blocks  []Block
		cur     []string
		kind    = KindMarkdown
		inFence bool // inside a non-diagram code fence
	)
	flush := func() {
		text := strings.Join(cur, "\n")
		if strings.TrimSpace(text) != "" {
			blocks = append(blocks, Block{Kind: kind, Text: text})
		}
		cur = cur[:0]
	}

	for _, line := range strings.Split(src, "\n") {
		switch {
		case kind == KindDiagram:
			if fenceLine.MatchString(line) {
				flush()
				kind = KindMarkdown
				continue
			}
			cur = append(cur, line)
		case !inFence && mermaidOpen.MatchString(line):
			flush()
			kind = KindDiagram
		default:
			if fenceLine.MatchString(line) {
				inFence = !inFence
			}
			cur = append(cur, line)
		}
	}
	flush()
	return blocks
}

// Renderer renders documents at a fixed width and remembers the last result,
// since screens redraw far more often than their content changes.
type Renderer struct {
	width int
	src   string
	out   string
	tr    *glamour.TermRenderer
}

// Render returns src rendered to fit width columns.
func (r *Renderer) Render(src string, width int) string {
	if width < 20 {
		width = 20
	}
	if r.tr != nil && width == r.width && src == r.src {
		return r.out
	}
	if r.tr == nil || width != r.width {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width-4),
		)
		if err != nil {
			r.tr = nil
			return src
		}
		r.tr = tr
		r.width = width
	}

	parts := make([]string, 0, 4)
	for _, b := range Split(src) {
		switch b.Kind {
		case KindDiagram:
			parts = append(parts, renderDiagram(b.Text, width))
		default:
			out, err := r.tr.Render(b.Text)
			if err != nil {
				out = b.Text
			}
			parts = append(parts, strings.Trim(out, "\n"))
		}
	}

	r.src = src
	r.out = strings.Join(parts, "\n\n")
	return r.out
}

var (
	nodeLabel  = regexp.MustCompile(`\b\w+[\[\(\{]+([^\]\)\}]+)[\]\)\}]+`)
	edgeLabel  = regexp.MustCompile(`-+>\|([^|]*)\|`)
	plainEdge  = regexp.MustCompile(`\s*(-+>|==+>|-\.+->)\s*`)
	headerLine = regexp.MustCompile(`^(graph|flowchart)\s+(\w+)$`)
)

// renderDiagram draws diagram source as a framed panel. Flowchart edges are
// shown as arrows between node labels; anything else is shown verbatim.
func renderDiagram(src string, width int) string {
	// Statements may share a line when separated by semicolons.
	var stmts []string
	for _, line := range strings.Split(strings.TrimSpace(src), "\n") {
		for _, st := range strings.Split(line, ";") {
			if st = strings.TrimSpace(st); st != "" {
				stmts = append(stmts, st)
			}
		}
	}

	caption := "diagram"
	flow := true
	body := make([]string, 0, len(stmts))
	for i, line := range stmts {
		if i == 0 {
			if m := headerLine.FindStringSubmatch(line); m != nil {
				caption = "flowchart " + m[2]
				continue
			}
			if !strings.Contains(line, "-") {
				caption = line
				flow = false
				continue
			}
		}
		if flow {
			line = DiagramLine(line)
		}
		body = append(body, line)
	}

	title := theme.Heading.Render("◇ " + caption)
	return theme.Diagram.Width(width - 2).Render(title + "\n" + strings.Join(body, "\n"))
}

// DiagramLine rewrites one flowchart statement for display, such as
// "A[Start] -->|go| B[End];" to "Start →(go) End".
func DiagramLine(line string) string {
	line = strings.TrimSuffix(strings.TrimSpace(line), ";")
	line = nodeLabel.ReplaceAllString(line, "$1")
	line = edgeLabel.ReplaceAllString(line, " →($1) ")
	line = plainEdge.ReplaceAllString(line, " → ")
	line = strings.ReplaceAll(line, "  ", " ")
	return strings.TrimSpace(line)
}
