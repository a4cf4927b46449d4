package core

import (
	"fmt"

	"github.com/mohae/deepcopy"
)

// DeepCopyTree returns a deep copy of the provided tree. Nil input yields an
// empty tree so callers can mutate the result unconditionally.
func DeepCopyTree(tree ConfigTree) (ConfigTree, error) {
	if tree == nil {
		return ConfigTree{}, nil
	}
	copied, ok := deepcopy.Copy(tree).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("failed to copy tree")
	}
	return copied, nil
}

// DeepCopy creates a deep copy of the supplied value. Used for snapshot
// isolation: handlers and the preview pipeline must never share backing
// storage with the canonical tree.
func DeepCopy[T any](v T) (T, error) {
	var zero T
	copied, ok := deepcopy.Copy(v).(T)
	if !ok {
		return zero, fmt.Errorf("failed to cast copied value to type %T", zero)
	}
	return copied, nil
}
