package ui

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// PathSeparator joins element ids into a fully qualified path.
const PathSeparator = "."

var (
	ErrInvalidID      = errors.New("ui: invalid element id")
	ErrDuplicateChild = errors.New("ui: element is already a child")
	ErrDuplicateID    = errors.New("ui: sibling with the same id exists")
	ErrNotChild       = errors.New("ui: element is not a child")
	ErrCycle          = errors.New("ui: element cannot contain its own ancestor")
	ErrNotFound       = errors.New("ui: not found")
	ErrNodeType       = errors.New("ui: node has a different type")
)

// Element is the unit of the retained UI tree. Author-time layout inputs are
// plain fields; computed geometry and interaction state are read through methods.
type Element struct {
	SortIndex int
	Gap       float32
	Visible   bool
	Disabled  bool
	Opacity   float32
	Fit       bool
	Size      Size // 0 on an axis means auto
	Padding   Spacing
	Margin    Spacing
	Flow      Flow
	Anchor    Anchor
	Position  Vec2 // root elements only
	Tooltip   string
	Nodes     []Node

	Events Events

	id       string
	parent   *Element
	children []*Element
	cache    map[string]*Element

	contentBox  Rect
	boundingBox Rect
	fitSize     Size // cross-axis override assigned by the parent's Fit pass
	opacity     float32

	pointer pointerState
}

// New creates a visible, fully opaque element.
func New(id string) (*Element, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return &Element{id: id, Visible: true, Opacity: 1, opacity: 1}, nil
}

// MustNew is like New but panics on an invalid id. Meant for static trees.
func MustNew(id string) *Element {
	e, err := New(id)
	if err != nil {
		panic(err)
	}
	return e
}

func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidID)
	}
	if strings.Contains(id, PathSeparator) {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidID, id, PathSeparator)
	}
	return nil
}

func (e *Element) ID() string           { return e.id }
func (e *Element) Parent() *Element     { return e.parent }
func (e *Element) Children() []*Element { return e.children }

// SetID renames the element. Cached lookups of the old path held by any
// ancestor are dropped.
func (e *Element) SetID(id string) error {
	if id == e.id {
		return nil
	}
	if err := validateID(id); err != nil {
		return err
	}
	if e.parent != nil {
		if s := e.parent.child(id); s != nil {
			return fmt.Errorf("%w: %q under %q", ErrDuplicateID, id, e.parent.FullPath())
		}
		e.parent.invalidateSubtree(e)
	}
	e.id = id
	return nil
}

// FullPath is the separator-joined chain of ids from the root to e.
func (e *Element) FullPath() string {
	var ids []string
	for n := e; n != nil; n = n.parent {
		ids = append(ids, n.id)
	}
	slices.Reverse(ids)
	return strings.Join(ids, PathSeparator)
}

// AddChild appends child, detaching it from a previous parent first.
func (e *Element) AddChild(child *Element) error {
	return e.InsertChild(len(e.children), child)
}

// InsertChild inserts child at index (clamped to the child count).
func (e *Element) InsertChild(index int, child *Element) error {
	if child == nil {
		return fmt.Errorf("%w: nil child", ErrInvalidID)
	}
	if err := validateID(child.id); err != nil {
		return err
	}
	if child.parent == e {
		return fmt.Errorf("%w: %q in %q", ErrDuplicateChild, child.id, e.FullPath())
	}
	for n := e; n != nil; n = n.parent {
		if n == child {
			return fmt.Errorf("%w: %q into %q", ErrCycle, child.id, e.FullPath())
		}
	}
	if e.child(child.id) != nil {
		return fmt.Errorf("%w: %q under %q", ErrDuplicateID, child.id, e.FullPath())
	}

	if child.parent != nil {
		if err := child.parent.RemoveChild(child); err != nil {
			return err
		}
	}

	index = max(0, min(index, len(e.children)))
	e.children = slices.Insert(e.children, index, child)
	child.parent = e
	e.Events.ChildAdded.Emit(child)
	return nil
}

// RemoveChild detaches child and drops every cached path into its subtree.
// The child keeps its own children and listeners; call Dispose to release them.
func (e *Element) RemoveChild(child *Element) error {
	i := slices.Index(e.children, child)
	if child == nil || i < 0 {
		id := "<nil>"
		if child != nil {
			id = child.id
		}
		return fmt.Errorf("%w: %q of %q", ErrNotChild, id, e.FullPath())
	}
	e.invalidateSubtree(child)
	e.children = slices.Delete(e.children, i, i+1)
	child.parent = nil
	child.pointer.reset()
	e.Events.ChildRemoved.Emit(child)
	return nil
}

// Dispose detaches e from its parent and releases listeners and children.
func (e *Element) Dispose() {
	if e.parent != nil {
		_ = e.parent.RemoveChild(e)
	}
	for len(e.children) > 0 {
		c := e.children[len(e.children)-1]
		c.Dispose()
	}
	e.Events.clear()
	e.cache = nil
}

func (e *Element) child(id string) *Element {
	for _, c := range e.children {
		if c.id == id {
			return c
		}
	}
	return nil
}

// ---- Name resolution ----

// NotFoundError reports a failed path lookup together with the chain of
// ancestors that did resolve.
type NotFoundError struct {
	Path     string   // requested path, relative to the lookup origin
	Origin   string   // full path of the element Get was called on
	Resolved []string // segments that resolved before the failure
	Missing  string   // segment that did not resolve
}

func (e *NotFoundError) Error() string {
	reached := e.Origin
	if len(e.Resolved) > 0 {
		reached = strings.Join(e.Resolved, PathSeparator)
	}
	return fmt.Sprintf("ui: element %q not found: %q has no child %q", e.Path, reached, e.Missing)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Get resolves a separator-joined path relative to e. Results are cached per
// literal path until the subtree changes.
func (e *Element) Get(path string) (*Element, error) {
	if found, ok := e.cache[path]; ok {
		return found, nil
	}
	segments := strings.Split(path, PathSeparator)
	node := e
	for i, seg := range segments {
		next := node.child(seg)
		if next == nil {
			return nil, &NotFoundError{
				Path:     path,
				Origin:   e.FullPath(),
				Resolved: segments[:i],
				Missing:  seg,
			}
		}
		node = next
	}
	if e.cache == nil {
		e.cache = make(map[string]*Element)
	}
	e.cache[path] = node
	return node, nil
}

// Has is the boolean form of Get.
func (e *Element) Has(path string) bool {
	_, err := e.Get(path)
	return err == nil
}

// InvalidateCache drops every cached lookup held by e and its descendants.
func (e *Element) InvalidateCache() {
	e.cache = nil
	for _, c := range e.children {
		c.InvalidateCache()
	}
}

// invalidateSubtree removes, from e and all of its ancestors, the cache
// entries for child's path and for every path beneath it.
func (e *Element) invalidateSubtree(child *Element) {
	rel := child.id
	for n := e; n != nil; n = n.parent {
		prefix := rel + PathSeparator
		for key := range n.cache {
			if key == rel || strings.HasPrefix(key, prefix) {
				delete(n.cache, key)
			}
		}
		rel = n.id + PathSeparator + rel
	}
}

// cachedPaths is used by tests to observe the lookup cache.
func (e *Element) cachedPaths() []string {
	keys := make([]string, 0, len(e.cache))
	for k := range e.cache {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
