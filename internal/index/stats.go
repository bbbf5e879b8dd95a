package index

import (
	"fmt"
	"sort"
	"strings"
)

// Statistics is a snapshot of the tree shape.
type Statistics struct {
	TotalNodes    int         `json:"total_nodes" yaml:"total_nodes"`
	Height        int         `json:"height" yaml:"height"`
	MinDepth      int         `json:"min_depth" yaml:"min_depth"`
	BalanceFactor int         `json:"balance_factor" yaml:"balance_factor"`
	IsBalanced    bool        `json:"is_balanced" yaml:"is_balanced"`
	LeafCount     int         `json:"leaf_count" yaml:"leaf_count"`
	NodesPerLevel map[int]int `json:"nodes_per_level" yaml:"nodes_per_level"`
}

// Height is -1 for an empty tree and 0 for a single node.
func (x *EventIndex) Height() int {
	return height(x.root)
}

func height(n *node) int {
	if n == nil {
		return -1
	}
	return 1 + max(height(n.left), height(n.right))
}

// BalanceFactor is the root's left height minus its right height, 0 when empty.
func (x *EventIndex) BalanceFactor() int {
	if x.root == nil {
		return 0
	}
	return height(x.root.left) - height(x.root.right)
}

// IsBalanced reports whether every node's balance factor is within [-1, 1].
func (x *EventIndex) IsBalanced() bool {
	_, ok := balanced(x.root)
	return ok
}

// balanced returns the subtree height and whether the subtree is balanced.
func balanced(n *node) (int, bool) {
	if n == nil {
		return -1, true
	}
	lh, lok := balanced(n.left)
	rh, rok := balanced(n.right)
	diff := lh - rh
	return 1 + max(lh, rh), lok && rok && diff >= -1 && diff <= 1
}

// MinDepth is the depth of the shallowest leaf, -1 when empty.
func (x *EventIndex) MinDepth() int {
	return minDepth(x.root)
}

func minDepth(n *node) int {
	switch {
	case n == nil:
		return -1
	case n.isLeaf():
		return 0
	case n.left == nil:
		return 1 + minDepth(n.right)
	case n.right == nil:
		return 1 + minDepth(n.left)
	default:
		return 1 + min(minDepth(n.left), minDepth(n.right))
	}
}

func (x *EventIndex) LeafCount() int {
	return leafCount(x.root)
}

func leafCount(n *node) int {
	if n == nil {
		return 0
	}
	if n.isLeaf() {
		return 1
	}
	return leafCount(n.left) + leafCount(n.right)
}

// NodesPerLevel maps each depth (root = 0) to the number of nodes at it.
func (x *EventIndex) NodesPerLevel() map[int]int {
	counts := make(map[int]int)
	countLevels(x.root, 0, counts)
	return counts
}

func countLevels(n *node, level int, counts map[int]int) {
	if n == nil {
		return
	}
	counts[level]++
	countLevels(n.left, level+1, counts)
	countLevels(n.right, level+1, counts)
}

func (x *EventIndex) Statistics() Statistics {
	return Statistics{
		TotalNodes:    x.size,
		Height:        x.Height(),
		MinDepth:      x.MinDepth(),
		BalanceFactor: x.BalanceFactor(),
		IsBalanced:    x.IsBalanced(),
		LeafCount:     x.LeafCount(),
		NodesPerLevel: x.NodesPerLevel(),
	}
}

// String renders the statistics as a box, levels in ascending order.
func (s Statistics) String() string {
	const width = 42
	line := strings.Repeat("═", width)
	row := func(label string, value any) string {
		return fmt.Sprintf("║  %-18s%-*v║\n", label, width-20, value)
	}

	balanced := "No ✗"
	if s.IsBalanced {
		balanced = "Yes ✓"
	}

	var sb strings.Builder
	sb.WriteString("╔" + line + "╗\n")
	fmt.Fprintf(&sb, "║%-*s║\n", width, "          BST STATISTICS")
	sb.WriteString("╠" + line + "╣\n")
	sb.WriteString(row("Total Nodes:", s.TotalNodes))
	sb.WriteString(row("Height:", s.Height))
	sb.WriteString(row("Min Depth:", s.MinDepth))
	sb.WriteString(row("Balance Factor:", s.BalanceFactor))
	sb.WriteString(row("Is Balanced:", balanced))
	sb.WriteString(row("Leaf Nodes:", s.LeafCount))
	sb.WriteString("╠" + line + "╣\n")
	fmt.Fprintf(&sb, "║%-*s║\n", width, "  Nodes Per Level:")

	levels := make([]int, 0, len(s.NodesPerLevel))
	for level := range s.NodesPerLevel {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	for _, level := range levels {
		sb.WriteString(row(fmt.Sprintf("  Level %d:", level), s.NodesPerLevel[level]))
	}
	sb.WriteString("╚" + line + "╝\n")
	return sb.String()
}
