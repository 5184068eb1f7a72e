package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/stmtsplit/output"
)

// slowThreshold marks stages that are highlighted in the report.
const slowThreshold = 100 * time.Millisecond

// formatTimingTree writes the tree rooted at root:
//
//	convert: 42ms
//	├─ load (3): 30ms
//	│  └─ parse 2020-01.csv: 12ms
//	└─ write (2): 2ms
func formatTimingTree(w io.Writer, root *timerNode, styles *output.Styles) {
	name := label(root)
	if styles != nil {
		name = styles.Keyword(name)
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", name, formatDuration(root.duration()))

	for i, child := range root.children {
		formatNode(w, child, "", i == len(root.children)-1, styles)
	}
}

func formatNode(w io.Writer, node *timerNode, prefix string, isLast bool, styles *output.Styles) {
	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	d := node.duration()
	timing := formatDuration(d)
	tree := prefix + branch
	if styles != nil {
		tree = styles.Dim(tree)
		timing = styles.Timing(timing, d >= slowThreshold)
	}
	_, _ = fmt.Fprintf(w, "%s%s: %s\n", tree, label(node), timing)

	for i, child := range node.children {
		formatNode(w, child, prefix+extension, i == len(node.children)-1, styles)
	}
}

func label(node *timerNode) string {
	if !node.counted {
		return node.name
	}
	return fmt.Sprintf("%s (%d)", node.name, node.count)
}

// formatDuration shows milliseconds below one second and seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}
