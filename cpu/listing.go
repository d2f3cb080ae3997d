package cpu

import (
	"fmt"
	"slices"
	"strings"

	"github.com/xlab/treeprint"
)

// Listing returns the assembled opcodes as a tree, one branch per label in
// address order. Opcodes before the first label hang off the root.
func (asm *Assembler) Listing(name string) (tree treeprint.Tree) {
	tree = treeprint.NewWithRoot(name)

	labels := make(map[int][]string, len(asm.Label))
	for label, ip := range asm.Label {
		labels[ip] = append(labels[ip], label)
	}

	branch := tree
	for _, op := range asm.Opcode {
		if names, ok := labels[op.Ip]; ok {
			slices.Sort(names)
			branch = tree.AddMetaBranch(op.Ip, strings.Join(names, ", ")+":")
			delete(labels, op.Ip)
		}

		var codes []string
		for _, code := range op.Codes {
			codes = append(codes, code.String())
		}
		branch.AddMetaNode(fmt.Sprintf("%d@%d", op.Ip, op.LineNo),
			fmt.Sprintf("%-20s ; %s", strings.Join(codes, ","), strings.Join(op.Words, " ")))
	}

	return
}
