package index

import (
	"strings"

	"github.com/tartampluch/go-calendar/internal/config"
)

// Render draws the tree sideways, right subtree above left subtree, one
// event per line.
func (x *EventIndex) Render() string {
	if x.root == nil {
		return config.EmptyCalendar
	}
	var sb strings.Builder
	render(&sb, x.root, "", true)
	return sb.String()
}

func render(sb *strings.Builder, n *node, prefix string, last bool) {
	connector, childPrefix := config.TreeBranch, prefix+config.TreePipe
	if last {
		connector, childPrefix = config.TreeLast, prefix+config.TreeSpace
	}
	sb.WriteString(prefix + connector + n.event.CompactString() + "\n")

	if n.right != nil {
		render(sb, n.right, childPrefix, n.left == nil)
	}
	if n.left != nil {
		render(sb, n.left, childPrefix, true)
	}
}
