package ui

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func tree(t *testing.T, rootID string, paths ...string) *Element {
	t.Helper()
	root := MustNew(rootID)
	for _, p := range paths {
		parent := root
		for _, seg := range strings.Split(p, PathSeparator) {
			if next := parent.child(seg); next != nil {
				parent = next
				continue
			}
			c := MustNew(seg)
			if err := parent.AddChild(c); err != nil {
				t.Fatalf("AddChild(%q): %v", seg, err)
			}
			parent = c
		}
	}
	return root
}

func TestNew_ValidatesID(t *testing.T) {
	tests := map[string]struct {
		id      string
		wantErr bool
	}{
		"plain id":       {id: "Toolbar"},
		"empty id":       {id: "", wantErr: true},
		"path separator": {id: "Toolbar.Button", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e, err := New(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidID) {
					t.Errorf("New(%q) error = %v, want ErrInvalidID", tt.id, err)
				}
				return
			}
			if !e.Visible || e.Opacity != 1 {
				t.Errorf("New(%q) Visible=%v Opacity=%v, want true, 1", tt.id, e.Visible, e.Opacity)
			}
		})
	}
}

func TestElement_AddChildSetsParent(t *testing.T) {
	parent := MustNew("Parent")
	child := MustNew("Child")

	if err := parent.AddChild(child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if child.Parent() != parent {
		t.Error("AddChild: child.Parent() not set")
	}
	if got := child.FullPath(); got != "Parent.Child" {
		t.Errorf("FullPath() = %q, want Parent.Child", got)
	}
}

func TestElement_StructuralErrors(t *testing.T) {
	type tc struct {
		run  func() error
		want error
	}

	tests := map[string]tc{
		"duplicate insertion": {
			run: func() error {
				p, c := MustNew("P"), MustNew("C")
				_ = p.AddChild(c)
				return p.AddChild(c)
			},
			want: ErrDuplicateChild,
		},
		"duplicate sibling id": {
			run: func() error {
				p := MustNew("P")
				_ = p.AddChild(MustNew("C"))
				return p.AddChild(MustNew("C"))
			},
			want: ErrDuplicateID,
		},
		"remove non-child": {
			run: func() error {
				return MustNew("P").RemoveChild(MustNew("C"))
			},
			want: ErrNotChild,
		},
		"insert ancestor": {
			run: func() error {
				p, c := MustNew("P"), MustNew("C")
				_ = p.AddChild(c)
				return c.AddChild(p)
			},
			want: ErrCycle,
		},
		"insert self": {
			run: func() error {
				p := MustNew("P")
				return p.AddChild(p)
			},
			want: ErrCycle,
		},
		"rename to path": {
			run: func() error {
				return MustNew("P").SetID("a.b")
			},
			want: ErrInvalidID,
		},
		"rename onto sibling": {
			run: func() error {
				p, a := MustNew("P"), MustNew("A")
				_ = p.AddChild(a)
				_ = p.AddChild(MustNew("B"))
				return a.SetID("B")
			},
			want: ErrDuplicateID,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestElement_ReparentDetachesFromPreviousParent(t *testing.T) {
	a, b, child := MustNew("A"), MustNew("B"), MustNew("Child")
	_ = a.AddChild(child)

	var removed *Element
	a.Events.ChildRemoved.Subscribe(func(e *Element) { removed = e })

	if err := b.AddChild(child); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if len(a.Children()) != 0 {
		t.Errorf("old parent still has %d children", len(a.Children()))
	}
	if child.Parent() != b {
		t.Error("child.Parent() is not the new parent")
	}
	if removed != child {
		t.Error("ChildRemoved not emitted on the old parent")
	}
}

func TestElement_RemoveChildSeversParent(t *testing.T) {
	root := tree(t, "Root", "A.B")
	a, _ := root.Get("A")
	b, _ := root.Get("A.B")

	if err := a.RemoveChild(b); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}
	if b.Parent() != nil {
		t.Error("RemoveChild: child still references its parent")
	}
	if got := b.FullPath(); got != "B" {
		t.Errorf("FullPath() after removal = %q, want B", got)
	}
}

func TestElement_InsertChildOrder(t *testing.T) {
	p := MustNew("P")
	_ = p.AddChild(MustNew("A"))
	_ = p.AddChild(MustNew("C"))
	_ = p.InsertChild(1, MustNew("B"))
	_ = p.InsertChild(-5, MustNew("First"))
	_ = p.InsertChild(99, MustNew("Last"))

	var ids []string
	for _, c := range p.Children() {
		ids = append(ids, c.ID())
	}
	want := []string{"First", "A", "B", "C", "Last"}
	if !slices.Equal(ids, want) {
		t.Errorf("children = %v, want %v", ids, want)
	}
}

func TestElement_Get(t *testing.T) {
	root := tree(t, "Root", "A.B.C", "A.D")

	tests := map[string]struct {
		path   string
		wantID string
	}{
		"direct child": {path: "A", wantID: "A"},
		"grandchild":   {path: "A.D", wantID: "D"},
		"deep":         {path: "A.B.C", wantID: "C"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := root.Get(tt.path)
			if err != nil {
				t.Fatalf("Get(%q): %v", tt.path, err)
			}
			if got.ID() != tt.wantID {
				t.Errorf("Get(%q).ID() = %q, want %q", tt.path, got.ID(), tt.wantID)
			}
			if !root.Has(tt.path) {
				t.Errorf("Has(%q) = false", tt.path)
			}
		})
	}
}

func TestElement_GetNotFoundNamesAncestor(t *testing.T) {
	root := tree(t, "Root", "A.X")

	_, err := root.Get("A.B.C")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get error = %v, want ErrNotFound", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Get error is %T, want *NotFoundError", err)
	}
	if !slices.Equal(nf.Resolved, []string{"A"}) || nf.Missing != "B" {
		t.Errorf("Resolved = %v, Missing = %q, want [A], B", nf.Resolved, nf.Missing)
	}
	if !strings.Contains(err.Error(), `"A" has no child "B"`) {
		t.Errorf("Error() = %q, want it to name ancestor A", err.Error())
	}
	if root.Has("A.B.C") {
		t.Error("Has(A.B.C) = true")
	}
}

func TestElement_GetNotFoundAtFirstSegment(t *testing.T) {
	root := tree(t, "Root", "A")
	_, err := root.Get("Z.Y")
	if err == nil || !strings.Contains(err.Error(), `"Root" has no child "Z"`) {
		t.Errorf("Get(Z.Y) error = %v, want it to name Root", err)
	}
}

func TestElement_RemoveInvalidatesExactSubtree(t *testing.T) {
	root := tree(t, "Root", "A.B.C", "A.BB", "A.D")
	for _, p := range []string{"A", "A.B", "A.B.C", "A.BB", "A.D"} {
		if _, err := root.Get(p); err != nil {
			t.Fatalf("Get(%q): %v", p, err)
		}
	}
	a, _ := root.Get("A")
	b, _ := root.Get("A.B")
	_, _ = a.Get("B.C")

	if err := a.RemoveChild(b); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}

	if got, want := root.cachedPaths(), []string{"A", "A.BB", "A.D"}; !slices.Equal(got, want) {
		t.Errorf("root cache = %v, want %v", got, want)
	}
	if got := a.cachedPaths(); len(got) != 0 {
		t.Errorf("A cache = %v, want empty", got)
	}
}

func TestElement_ReaddedPathResolvesFresh(t *testing.T) {
	root := tree(t, "Root", "A.B")
	a, _ := root.Get("A")
	old, _ := root.Get("A.B")

	_ = a.RemoveChild(old)
	if root.Has("A.B") {
		t.Fatal("Has(A.B) after removal = true")
	}

	replacement := MustNew("B")
	if err := a.AddChild(replacement); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	got, err := root.Get("A.B")
	if err != nil {
		t.Fatalf("Get(A.B): %v", err)
	}
	if got != replacement {
		t.Error("Get(A.B) returned the removed element")
	}
}

func TestElement_RenameInvalidatesOldPath(t *testing.T) {
	root := tree(t, "Root", "A.B.C")
	b, _ := root.Get("A.B")
	_, _ = root.Get("A.B.C")

	if err := b.SetID("Renamed"); err != nil {
		t.Fatalf("SetID: %v", err)
	}
	if root.Has("A.B") || root.Has("A.B.C") {
		t.Error("old path still resolves after rename")
	}
	got, err := root.Get("A.Renamed.C")
	if err != nil || got.ID() != "C" {
		t.Errorf("Get(A.Renamed.C) = %v, %v", got, err)
	}
}

func TestElement_InvalidateCache(t *testing.T) {
	root := tree(t, "Root", "A.B")
	a, _ := root.Get("A")
	_, _ = a.Get("B")
	_, _ = root.Get("A.B")

	root.InvalidateCache()

	if len(root.cachedPaths()) != 0 || len(a.cachedPaths()) != 0 {
		t.Error("InvalidateCache left entries behind")
	}
}

func TestElement_Dispose(t *testing.T) {
	root := tree(t, "Root", "A.B")
	a, _ := root.Get("A")
	b, _ := root.Get("A.B")
	a.Events.Click.Subscribe(func(MouseEvent) {})

	a.Dispose()

	if len(root.Children()) != 0 {
		t.Error("Dispose did not detach from parent")
	}
	if b.Parent() != nil || len(a.Children()) != 0 {
		t.Error("Dispose did not release children")
	}
	if a.Events.Click.Len() != 0 {
		t.Error("Dispose did not clear listeners")
	}
	if root.Has("A") {
		t.Error("Has(A) after Dispose = true")
	}
}
