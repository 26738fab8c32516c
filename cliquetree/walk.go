// SPDX-License-Identifier: MIT

package cliquetree

import "fmt"

// Walk traverses the subtree rooted at start depth-first, children in
// insertion order, calling OnVisit before and OnExit after each clique's
// children. The first hook error or context error aborts the walk.
// Complexity: O(subtree) plus hook cost; stack depth equals tree depth.
func Walk(start *Clique, opts ...WalkOption) error {
	if start == nil {
		return ErrNilClique
	}
	wopts := DefaultWalkOptions()
	for _, fn := range opts {
		fn(&wopts)
	}
	return walk(start, 0, &wopts)
}

func walk(c *Clique, depth int, o *WalkOptions) error {
	// 1. Cancellation check
	select {
	case <-o.Ctx.Done():
		return o.Ctx.Err()
	default:
	}

	// 2. Depth limit
	if o.MaxDepth >= 0 && depth > o.MaxDepth {
		return nil
	}

	// 3. Pre-order hook
	if o.OnVisit != nil {
		if err := o.OnVisit(c, depth); err != nil {
			return fmt.Errorf("cliquetree: OnVisit at depth %d: %w", depth, err)
		}
	}

	// 4. Children
	for _, child := range c.children {
		if err := walk(child, depth+1, o); err != nil {
			return err
		}
	}

	// 5. Post-order hook
	if o.OnExit != nil {
		if err := o.OnExit(c, depth); err != nil {
			return fmt.Errorf("cliquetree: OnExit at depth %d: %w", depth, err)
		}
	}
	return nil
}
