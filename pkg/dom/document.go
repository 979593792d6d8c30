package dom

// Kind is the live node type.
type Kind uint8

const (
	KindText     Kind = iota // Text node
	KindElement              // Element node
	KindFragment             // Transient grouping container
)

// Document owns a live node tree and assigns node identity. The root
// container is Body(); sessions address nodes by their ID.
type Document struct {
	nextID   uint64
	nodes    map[uint64]*Node
	body     *Node
	observer func(Op)
}

// NewDocument creates an empty document with a body container.
func NewDocument() *Document {
	d := &Document{
		nextID: 1,
		nodes:  make(map[uint64]*Node),
	}
	d.body = d.register(&Node{kind: KindElement, tag: "body"})
	return d
}

// Body returns the root container node.
func (d *Document) Body() *Node {
	return d.body
}

// Observe registers fn to receive every subsequent mutation. Passing
// nil stops observation. Only one observer is supported; the session
// layer fans out if it needs to.
func (d *Document) Observe(fn func(Op)) {
	d.observer = fn
}

// NodeByID returns the live node with the given ID, if it is still part
// of the document.
func (d *Document) NodeByID(id uint64) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Len returns the number of live nodes the document tracks, including
// the body.
func (d *Document) Len() int {
	return len(d.nodes)
}

// CreateElement creates a detached element node for the given tag.
func (d *Document) CreateElement(tag string) *Node {
	n := d.register(&Node{kind: KindElement, tag: tag})
	d.emit(Op{Kind: OpCreateElement, Node: n.id, Tag: tag})
	return n
}

// CreateText creates a detached text node.
func (d *Document) CreateText(text string) *Node {
	n := d.register(&Node{kind: KindText, text: text})
	d.emit(Op{Kind: OpCreateText, Node: n.id, Value: text})
	return n
}

// CreateFragment creates a transient container. Appending it to another
// node splices its children into the target and leaves it empty.
func (d *Document) CreateFragment() *Node {
	n := d.register(&Node{kind: KindFragment})
	d.emit(Op{Kind: OpCreateFragment, Node: n.id})
	return n
}

// register assigns an ID and tracks the node.
func (d *Document) register(n *Node) *Node {
	n.doc = d
	n.id = d.nextID
	d.nextID++
	d.nodes[n.id] = n
	return n
}

// forget drops n and its subtree from the ID index. Detached subtrees
// are never re-attached by the kernel, so their IDs can be released.
func (d *Document) forget(n *Node) {
	delete(d.nodes, n.id)
	for _, c := range n.children {
		d.forget(c)
	}
}

// emit reports a mutation to the observer, if any.
func (d *Document) emit(op Op) {
	if d.observer != nil {
		d.observer(op)
	}
}
