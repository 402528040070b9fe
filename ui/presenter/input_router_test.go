package presenter

import "testing"

type mockNav struct{ next, prev int }

func (n *mockNav) Next() bool { n.next++; return true }
func (n *mockNav) Prev() bool { n.prev++; return true }

type mockReviewer struct {
	open             bool
	accepts, rejects int
}

func (r *mockReviewer) IsOpen() bool { return r.open }
func (r *mockReviewer) Accept()      { r.accepts++; r.open = false }
func (r *mockReviewer) Reject()      { r.rejects++; r.open = false }

type activeAborter struct{ active bool }

func (a *activeAborter) Abort() bool {
	was := a.active
	a.active = false
	return was
}

func TestInputRouter_Navigation(t *testing.T) {
	nav := &mockNav{}
	r := NewInputRouter(nav, &mockReviewer{}, &activeAborter{})
	for _, k := range []string{"Left", "a", "A"} {
		if !r.Key(k) {
			t.Fatalf("%s not consumed", k)
		}
	}
	for _, k := range []string{"Right", "d", "D"} {
		r.Key(k)
	}
	if nav.prev != 3 || nav.next != 3 {
		t.Fatalf("unexpected navigation counts: %+v", nav)
	}
	if r.Key("x") {
		t.Fatalf("unbound key consumed")
	}
}

func TestInputRouter_AcceptOnlyWhenOpen(t *testing.T) {
	rev := &mockReviewer{}
	r := NewInputRouter(&mockNav{}, rev, &activeAborter{})
	if r.Key("Return") {
		t.Fatalf("Return without preview must not be consumed")
	}
	for _, k := range []string{"Return", "KP_Enter", "space"} {
		rev.open = true
		if !r.Key(k) {
			t.Fatalf("%s not consumed", k)
		}
	}
	if rev.accepts != 3 {
		t.Fatalf("expected 3 accepts, got %d", rev.accepts)
	}
}

func TestInputRouter_SpaceAcceptsOnce(t *testing.T) {
	rev := &mockReviewer{open: true}
	r := NewInputRouter(&mockNav{}, rev, &activeAborter{})
	if !r.Key("space") {
		t.Fatalf("space not consumed while the preview is open")
	}
	if r.Key("space") {
		t.Fatalf("space after the decision must fall through")
	}
	if rev.accepts != 1 || rev.rejects != 0 {
		t.Fatalf("space must accept exactly once, got %+v", rev)
	}
}

func TestInputRouter_CancelPrefersReview(t *testing.T) {
	rev := &mockReviewer{open: true}
	crop := &activeAborter{active: true}
	r := NewInputRouter(&mockNav{}, rev, crop)
	if !r.Key("Escape") || rev.rejects != 1 || !crop.active {
		t.Fatalf("escape must reject the open preview first")
	}
	if !r.Cancel() || crop.active {
		t.Fatalf("second cancel must abort the selection")
	}
	if r.Cancel() {
		t.Fatalf("nothing left to cancel")
	}
}
