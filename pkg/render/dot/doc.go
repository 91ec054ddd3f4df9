// Package dot draws a layout hierarchy and its active constraints with
// Graphviz.
//
//	src := dot.ToDOT(tree, dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// Containers point at their children with solid edges. Constraints between
// two items are dashed edges that do not affect ranking, so the drawing keeps
// the shape of the tree.
package dot
