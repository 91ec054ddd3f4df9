// Package scene loads declarative layout documents and turns them into a
// hierarchy plus a batch of mutation targets.
//
// Scenes are written in TOML or YAML; the format follows the file extension.
//
//	name = "card"
//	root = "card"
//
//	[[items]]
//	id = "title"
//
//	[[items]]
//	id = "subtitle"
//
//	[[ops]]
//	kind = "distribute"
//	direction = "top-to-bottom"
//	spacing = 4
//	items = ["title", "subtitle"]
//
// [Build] attaches nested items immediately and leaves the root's direct
// children to the batch, so applying [Built.Targets] with a batch.Mutator
// stages those children before the constraints that reference them.
package scene
