package mpt

// Trie is an in-memory Merkle Patricia trie.
type Trie struct {
	root Node
}

func NewTrie() *Trie {
	return &Trie{}
}

// Hash returns the root hash.
func (t *Trie) Hash() []byte {
	return Hash(t.root)
}

// Get returns the value stored under key.
func (t *Trie) Get(key []byte) ([]byte, bool) {
	node := t.root
	nibbles := FromBytes(key)
	for {
		if IsEmptyNode(node) {
			return nil, false
		}

		if leaf, ok := node.(*LeafNode); ok {
			matched := PrefixMatchedLen(leaf.Path, nibbles)
			if matched != len(leaf.Path) || matched != len(nibbles) {
				return nil, false
			}
			return leaf.Value, true
		}

		if branch, ok := node.(*BranchNode); ok {
			if len(nibbles) == 0 {
				return branch.Value, branch.HasValue()
			}

			b, remaining := nibbles[0], nibbles[1:]
			nibbles = remaining
			node = branch.Branches[b]
			continue
		}

		if ext, ok := node.(*ExtensionNode); ok {
			matched := PrefixMatchedLen(ext.Path, nibbles)
			if matched < len(ext.Path) {
				return nil, false
			}

			nibbles = nibbles[matched:]
			node = ext.Next
			continue
		}

		panic("not found")
	}
}

// Put stores value under key, replacing any previous value.
//
// When inserting:
// at an empty node, the remaining path becomes a leaf;
// at a leaf, the shared prefix becomes an extension over a branch holding both values;
// at an extension, the extension is split at the first mismatching nibble.
func (t *Trie) Put(key []byte, value []byte) {
	// a pointer to the slot holding the current node, so that it can be
	// replaced without tracking the parent
	nodeRef := &t.root
	nibbles := FromBytes(key)
	for {
		node := *nodeRef
		if IsEmptyNode(node) {
			*nodeRef = NewLeafNodeFromNibbles(nibbles, value)
			return
		}

		if leaf, ok := node.(*LeafNode); ok {
			matched := PrefixMatchedLen(leaf.Path, nibbles)

			// L 01020304 hello
			// + 01020304 world
			if matched == len(leaf.Path) && matched == len(nibbles) {
				*nodeRef = NewLeafNodeFromNibbles(leaf.Path, value)
				return
			}

			// L 01020304 hello
			// + 010203   world
			// =>
			// E 010203
			// B 0       world
			// L 4       hello
			branch := NewBranchNode()
			if matched == len(leaf.Path) {
				branch.SetValue(leaf.Value)
			} else {
				branch.SetBranch(leaf.Path[matched], NewLeafNodeFromNibbles(leaf.Path[matched+1:], leaf.Value))
			}
			if matched == len(nibbles) {
				branch.SetValue(value)
			} else {
				branch.SetBranch(nibbles[matched], NewLeafNodeFromNibbles(nibbles[matched+1:], value))
			}

			if matched > 0 {
				*nodeRef = NewExtensionNode(leaf.Path[:matched], branch)
			} else {
				*nodeRef = branch
			}
			return
		}

		if branch, ok := node.(*BranchNode); ok {
			if len(nibbles) == 0 {
				branch.SetValue(value)
				return
			}

			b, remaining := nibbles[0], nibbles[1:]
			nibbles = remaining
			nodeRef = &branch.Branches[b]
			continue
		}

		if ext, ok := node.(*ExtensionNode); ok {
			matched := PrefixMatchedLen(ext.Path, nibbles)
			if matched < len(ext.Path) {
				// E 01020304
				// + 010203    world
				// =>
				// E 010203
				// B 0         world
				// E 4 (or the old next node when nothing is left)
				extNibbles, branchNibble, extRemaining := ext.Path[:matched], ext.Path[matched], ext.Path[matched+1:]
				branch := NewBranchNode()
				if len(extRemaining) == 0 {
					branch.SetBranch(branchNibble, ext.Next)
				} else {
					branch.SetBranch(branchNibble, NewExtensionNode(extRemaining, ext.Next))
				}

				if matched == len(nibbles) {
					branch.SetValue(value)
				} else {
					branch.SetBranch(nibbles[matched], NewLeafNodeFromNibbles(nibbles[matched+1:], value))
				}

				if len(extNibbles) == 0 {
					*nodeRef = branch
				} else {
					*nodeRef = NewExtensionNode(extNibbles, branch)
				}
				return
			}

			nibbles = nibbles[matched:]
			nodeRef = &ext.Next
			continue
		}

		panic("unknown type")
	}
}
