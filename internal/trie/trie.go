// Package trie stores choice sequences as a prefix tree. Every node lives
// in one slice and refers to its children by index.
package trie

import (
	"sort"
	"strconv"
	"strings"
)

// NodeIndex is the position of a node in the tree's node slice.
type NodeIndex int

const root NodeIndex = 0

type node struct {
	children map[int]NodeIndex
	// label is set on nodes where an inserted sequence ends.
	label string
	isEnd bool
}

// Trie maps choice sequences to labels.
type Trie struct {
	nodes []node
}

// New returns a tree holding only the empty root.
func New() *Trie {
	t := &Trie{nodes: make([]node, 0, 64)}
	t.newNode()
	return t
}

func (t *Trie) newNode() NodeIndex {
	idx := NodeIndex(len(t.nodes))
	t.nodes = append(t.nodes, node{children: make(map[int]NodeIndex)})
	return idx
}

// Insert records sequence with the given label. Inserting a sequence
// again replaces its label.
func (t *Trie) Insert(sequence []int, label string) {
	current := root
	for _, c := range sequence {
		child, ok := t.nodes[current].children[c]
		if !ok {
			child = t.newNode()
			t.nodes[current].children[c] = child
		}
		current = child
	}
	t.nodes[current].isEnd = true
	t.nodes[current].label = label
}

// Lookup returns the label of sequence.
func (t *Trie) Lookup(sequence []int) (string, bool) {
	current := root
	for _, c := range sequence {
		child, ok := t.nodes[current].children[c]
		if !ok {
			return "", false
		}
		current = child
	}
	n := t.nodes[current]
	return n.label, n.isEnd
}

// Len returns the number of nodes, the root included.
func (t *Trie) Len() int { return len(t.nodes) }

// Equal reports whether both trees hold the same labelled sequences.
func (t *Trie) Equal(o *Trie) bool {
	if len(t.nodes) != len(o.nodes) {
		return false
	}
	return t.equalNodes(root, o, root)
}

func (t *Trie) equalNodes(a NodeIndex, o *Trie, b NodeIndex) bool {
	na, nb := t.nodes[a], o.nodes[b]
	if na.isEnd != nb.isEnd || na.label != nb.label || len(na.children) != len(nb.children) {
		return false
	}
	for c, ca := range na.children {
		cb, ok := nb.children[c]
		if !ok || !t.equalNodes(ca, o, cb) {
			return false
		}
	}
	return true
}

// String renders the tree with children in ascending choice order, e.g.
// "0(*completed)1(0(*cancelled))".
func (t *Trie) String() string {
	var sb strings.Builder
	t.writeNode(&sb, root)
	return sb.String()
}

func (t *Trie) writeNode(sb *strings.Builder, idx NodeIndex) {
	n := t.nodes[idx]
	if n.isEnd {
		sb.WriteString("*")
		sb.WriteString(n.label)
	}

	keys := make([]int, 0, len(n.children))
	for c := range n.children {
		keys = append(keys, c)
	}
	sort.Ints(keys)

	for _, c := range keys {
		sb.WriteString(strconv.Itoa(c))
		sb.WriteString("(")
		t.writeNode(sb, n.children[c])
		sb.WriteString(")")
	}
}
