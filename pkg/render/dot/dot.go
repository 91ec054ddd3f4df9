package dot

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/layoutkit/pkg/constraint"
	errs "github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/hierarchy"
	"github.com/matzehuels/layoutkit/pkg/observability"
)

// Output formats accepted by [Render].
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// Options configures hierarchy rendering.
type Options struct {
	// Detailed adds node metadata, effects and recognizers to node labels.
	Detailed bool

	// HideConstraints omits constraint edges and unary constraint lines.
	HideConstraints bool
}

// ToDOT converts a hierarchy to Graphviz DOT. Containment is drawn as solid
// edges from container to child. Each active two-item constraint is a dashed
// edge from its first to its second item, labelled with its relation;
// unary constraints are listed inside their item's label.
func ToDOT(t *hierarchy.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	unary := make(map[string][]string)
	var edges []*constraint.Constraint
	if !opts.HideConstraints {
		for _, n := range t.Nodes() {
			for _, c := range t.Constraints(n) {
				if c.IsUnary() {
					id := c.First.Item.LayoutID()
					unary[id] = append(unary[id], constraintLabel(c))
					continue
				}
				edges = append(edges, c)
			}
		}
	}

	for _, n := range t.Nodes() {
		label := fmtLabel(t, n, opts.Detailed, unary[n.LayoutID()])
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if t.Depth(n) == 0 {
			attrs = append(attrs, "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.LayoutID(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range t.Nodes() {
		for _, ch := range t.Children(n) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.LayoutID(), ch.LayoutID())
		}
	}

	if len(edges) > 0 {
		buf.WriteString("\n")
	}
	for _, c := range edges {
		second, _ := c.Second.Get()
		fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=\"#4f7cac\", fontcolor=\"#4f7cac\", fontsize=10, constraint=false, label=%q];\n",
			c.First.Item.LayoutID(), second.Item.LayoutID(), constraintLabel(c))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// constraintLabel renders c without item IDs, which the edge already shows.
func constraintLabel(c *constraint.Constraint) string {
	var sb strings.Builder
	sb.WriteString(c.First.Attribute.String() + " " + c.Relation.String() + " ")
	if second, ok := c.Second.Get(); ok {
		if c.Multiplier != 1 {
			sb.WriteString(strconv.FormatFloat(c.Multiplier, 'g', -1, 64) + "*")
		}
		sb.WriteString(second.Attribute.String())
		switch {
		case c.Constant > 0:
			sb.WriteString(" + " + strconv.FormatFloat(c.Constant, 'g', -1, 64))
		case c.Constant < 0:
			sb.WriteString(" - " + strconv.FormatFloat(-c.Constant, 'g', -1, 64))
		}
	} else {
		sb.WriteString(strconv.FormatFloat(c.Constant, 'g', -1, 64))
	}
	if c.Priority != constraint.PriorityRequired {
		sb.WriteString(" @" + strconv.Itoa(int(c.Priority)))
	}
	return sb.String()
}

func fmtLabel(t *hierarchy.Tree, n *hierarchy.Node, detailed bool, unary []string) string {
	lines := []string{n.LayoutID()}
	lines = append(lines, unary...)
	if !detailed {
		return strings.Join(lines, "\n")
	}

	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		lines = append(lines, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}
	for _, e := range t.Effects(n) {
		lines = append(lines, "effect: "+e.EffectName())
	}
	for _, r := range t.Recognizers(n) {
		lines = append(lines, "recognizer: "+r.RecognizerName())
	}
	return strings.Join(lines, "\n")
}

// Render produces the hierarchy in the given format ("dot" or "svg").
func Render(ctx context.Context, t *hierarchy.Tree, format string, opts Options) ([]byte, error) {
	start := time.Now()
	observability.Render().OnRenderStart(ctx, format, t.NodeCount())

	var out []byte
	var err error
	switch format {
	case FormatDOT:
		out = []byte(ToDOT(t, opts))
	case FormatSVG:
		out, err = RenderSVG(ctx, ToDOT(t, opts))
	default:
		err = errs.New(errs.ErrCodeUnsupported, "unsupported render format %q", format)
	}

	observability.Render().OnRenderComplete(ctx, format, len(out), time.Since(start), err)
	return out, err
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag to a zero-origin viewBox with
// matching pixel width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
