package doc

// dictNode is the backing store shared by every handle to one dictionary.
// keys[i] is the key of vals[i]; index maps a key to its position.
type dictNode struct {
	keys    []string
	vals    []Value
	index   map[string]int
	frozen  bool
	changed bool
}

func newDictNode(n int) *dictNode {
	return &dictNode{
		keys:  make([]string, 0, n),
		vals:  make([]Value, 0, n),
		index: make(map[string]int, n),
	}
}

func (n *dictNode) get(key string) (Value, bool) {
	i, ok := n.index[key]
	if !ok {
		return Value{}, false
	}
	return n.vals[i], true
}

// set replaces the value of an existing key in place or appends a new key.
func (n *dictNode) set(key string, v Value) {
	n.changed = true
	if i, ok := n.index[key]; ok {
		n.vals[i] = v
		return
	}
	n.index[key] = len(n.keys)
	n.keys = append(n.keys, key)
	n.vals = append(n.vals, v)
}

func (n *dictNode) remove(key string) bool {
	i, ok := n.index[key]
	if !ok {
		return false
	}
	n.changed = true
	delete(n.index, key)
	n.keys = append(n.keys[:i], n.keys[i+1:]...)
	n.vals = append(n.vals[:i], n.vals[i+1:]...)
	for j := i; j < len(n.keys); j++ {
		n.index[n.keys[j]] = j
	}
	return true
}

// replace takes over the contents of src, keeping n's identity so that
// every view of n observes the new contents.
func (n *dictNode) replace(src *dictNode) {
	n.keys = src.keys
	n.vals = src.vals
	n.index = src.index
	n.changed = true
}

type arrayNode struct {
	vals    []Value
	frozen  bool
	changed bool
}

func newArrayNode(n int) *arrayNode {
	return &arrayNode{vals: make([]Value, 0, n)}
}

func (n *arrayNode) set(i int, v Value) error {
	if i < 0 || i >= len(n.vals) {
		return indexError(i, len(n.vals))
	}
	n.vals[i] = v
	n.changed = true
	return nil
}

func (n *arrayNode) insert(i int, v Value) error {
	if i < 0 || i > len(n.vals) {
		return indexError(i, len(n.vals))
	}
	n.vals = append(n.vals, Value{})
	copy(n.vals[i+1:], n.vals[i:])
	n.vals[i] = v
	n.changed = true
	return nil
}

func (n *arrayNode) remove(i int) error {
	if i < 0 || i >= len(n.vals) {
		return indexError(i, len(n.vals))
	}
	n.vals = append(n.vals[:i], n.vals[i+1:]...)
	n.changed = true
	return nil
}

func (n *arrayNode) replace(src *arrayNode) {
	n.vals = src.vals
	n.changed = true
}

// freeze returns a deep immutable copy of v.
func (v Value) freeze() Value {
	switch v.typ {
	case ArrayType:
		if v.arr.frozen {
			return v
		}
		n := &arrayNode{vals: make([]Value, len(v.arr.vals)), frozen: true}
		for i, elt := range v.arr.vals {
			n.vals[i] = elt.freeze()
		}
		return Value{typ: ArrayType, arr: n}
	case DictionaryType:
		if v.dict.frozen {
			return v
		}
		n := &dictNode{
			keys:   append([]string(nil), v.dict.keys...),
			vals:   make([]Value, len(v.dict.vals)),
			index:  make(map[string]int, len(v.dict.keys)),
			frozen: true,
		}
		for i, elt := range v.dict.vals {
			n.vals[i] = elt.freeze()
			n.index[n.keys[i]] = i
		}
		return Value{typ: DictionaryType, dict: n}
	}
	return v
}

// thaw returns a deep mutable copy of v with fresh backing nodes.
func (v Value) thaw() Value {
	switch v.typ {
	case ArrayType:
		n := &arrayNode{vals: make([]Value, len(v.arr.vals))}
		for i, elt := range v.arr.vals {
			n.vals[i] = elt.thaw()
		}
		return Value{typ: ArrayType, arr: n}
	case DictionaryType:
		n := &dictNode{
			keys:  append([]string(nil), v.dict.keys...),
			vals:  make([]Value, len(v.dict.vals)),
			index: make(map[string]int, len(v.dict.keys)),
		}
		for i, elt := range v.dict.vals {
			n.vals[i] = elt.thaw()
			n.index[n.keys[i]] = i
		}
		return Value{typ: DictionaryType, dict: n}
	}
	return v
}

// reaches reports whether the node target (a *dictNode or *arrayNode) is
// v itself or nested anywhere below it.
func (v Value) reaches(target any) bool {
	return v.reachesSeen(target, map[any]bool{})
}

func (v Value) reachesSeen(target any, seen map[any]bool) bool {
	var children []Value
	switch v.typ {
	case ArrayType:
		if any(v.arr) == target {
			return true
		}
		if seen[v.arr] {
			return false
		}
		seen[v.arr] = true
		children = v.arr.vals
	case DictionaryType:
		if any(v.dict) == target {
			return true
		}
		if seen[v.dict] {
			return false
		}
		seen[v.dict] = true
		children = v.dict.vals
	default:
		return false
	}
	for _, c := range children {
		if c.reachesSeen(target, seen) {
			return true
		}
	}
	return false
}

// changedDeep reports whether v or any container below it was mutated
// since the last clearChanged.
func (v Value) changedDeep() bool {
	var children []Value
	switch v.typ {
	case ArrayType:
		if v.arr.changed {
			return true
		}
		children = v.arr.vals
	case DictionaryType:
		if v.dict.changed {
			return true
		}
		children = v.dict.vals
	default:
		return false
	}
	for _, c := range children {
		if c.changedDeep() {
			return true
		}
	}
	return false
}

func (v Value) clearChanged() {
	var children []Value
	switch v.typ {
	case ArrayType:
		v.arr.changed = false
		children = v.arr.vals
	case DictionaryType:
		v.dict.changed = false
		children = v.dict.vals
	}
	for _, c := range children {
		c.clearChanged()
	}
}
