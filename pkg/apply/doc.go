// Package apply activates constraints on the container that owns them.
//
// A constraint between two items belongs to their nearest common ancestor;
// a unary constraint belongs to its item. [Applier.Apply] resolves that
// container through the hierarchy and registers the constraint there.
// [Applier.Remove] detaches it from whichever container the hierarchy
// recorded as its owner.
//
// Application identity is the *constraint.Constraint handle. Two handles
// holding equal values are two distinct constraints; applying the same
// handle twice fails with DOUBLE_APPLICATION.
//
// All calls are synchronous and must be confined to one goroutine per
// hierarchy.
package apply
