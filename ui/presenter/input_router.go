package presenter

// Navigator switches images.
type Navigator interface {
	Next() bool
	Prev() bool
}

// Reviewer decides on an open preview.
type Reviewer interface {
	IsOpen() bool
	Accept()
	Reject()
}

// InputRouter maps key presses and the secondary button to presenter
// actions. Keys are Tk keysyms.
type InputRouter struct {
	nav    Navigator
	review Reviewer
	crop   Aborter
}

func NewInputRouter(nav Navigator, review Reviewer, crop Aborter) *InputRouter {
	return &InputRouter{nav: nav, review: review, crop: crop}
}

// Key handles a key press and reports whether it was consumed.
func (r *InputRouter) Key(keysym string) bool {
	if r == nil {
		return false
	}
	switch keysym {
	case "Left", "a", "A":
		if r.nav != nil {
			r.nav.Prev()
		}
		return true
	case "Right", "d", "D":
		if r.nav != nil {
			r.nav.Next()
		}
		return true
	case "Return", "KP_Enter", "space":
		if r.review != nil && r.review.IsOpen() {
			r.review.Accept()
			return true
		}
		return false
	case "Escape":
		return r.Cancel()
	}
	return false
}

// Cancel rejects an open preview or aborts the selection in progress.
func (r *InputRouter) Cancel() bool {
	if r == nil {
		return false
	}
	if r.review != nil && r.review.IsOpen() {
		r.review.Reject()
		return true
	}
	if r.crop != nil {
		return r.crop.Abort()
	}
	return false
}
