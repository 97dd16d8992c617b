package domain

import "errors"

var (
	// ErrInvalidQuantity indicates a line item quantity below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrInvalidPrice indicates a negative unit price or unit cost.
	ErrInvalidPrice = errors.New("unit price and unit cost must not be negative")

	// ErrCannotRemoveRoot indicates an attempt to remove the project root.
	ErrCannotRemoveRoot = errors.New("cannot remove the project root")

	// ErrNoParent indicates an operation that needs a parent was requested on a root.
	ErrNoParent = errors.New("node has no parent")

	// ErrCycleDetected indicates a move that would make a node its own descendant.
	ErrCycleDetected = errors.New("move would create a cycle")

	// ErrProjectNotFound indicates no project (or no root node) exists for an id.
	ErrProjectNotFound = errors.New("project not found")

	// ErrAlreadyAttached indicates a node that already has a parent was appended elsewhere.
	ErrAlreadyAttached = errors.New("node is already attached to a parent")

	// ErrForeignRoot indicates a save whose root node is stored under another project.
	ErrForeignRoot = errors.New("tree root belongs to another project")

	// ErrInvalidRoot indicates a tree root that is not a detached project node.
	ErrInvalidRoot = errors.New("tree root must be a detached project node")
)
