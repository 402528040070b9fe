package batch

import "fmt"

// Status is the review outcome of one image.
type Status int

const (
	StatusPending Status = iota
	StatusCropped
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCropped:
		return "cropped"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Item is one input image and the files written from it.
type Item struct {
	Path    string
	Status  Status
	Outputs []string
}

// Summary counts items per status.
type Summary struct {
	Total, Pending, Cropped, Rejected, Outputs int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d images: %d cropped (%d files), %d rejected, %d pending",
		s.Total, s.Cropped, s.Outputs, s.Rejected, s.Pending)
}

// Batch is a cursor over a non-empty list of images. Navigation clamps at
// both ends. Not safe for concurrent use.
type Batch struct {
	items []Item
	index int
}

// New returns a batch positioned on the first path.
func New(paths []string) (*Batch, error) {
	if len(paths) == 0 {
		return nil, ErrNoImages
	}
	items := make([]Item, len(paths))
	for i, p := range paths {
		items[i] = Item{Path: p}
	}
	return &Batch{items: items}, nil
}

func (b *Batch) Len() int      { return len(b.items) }
func (b *Batch) Index() int    { return b.index }
func (b *Batch) Current() Item { return b.items[b.index] }
func (b *Batch) AtEnd() bool   { return b.index == len(b.items)-1 }

// Next moves forward and reports whether the cursor moved.
func (b *Batch) Next() bool { return b.Seek(b.index + 1) }

// Prev moves backward and reports whether the cursor moved.
func (b *Batch) Prev() bool { return b.Seek(b.index - 1) }

// Seek clamps i into range, moves there and reports whether the cursor moved.
func (b *Batch) Seek(i int) bool {
	if i < 0 {
		i = 0
	}
	if i >= len(b.items) {
		i = len(b.items) - 1
	}
	moved := i != b.index
	b.index = i
	return moved
}

// MarkCropped records an output written for the current image and returns
// the number of outputs it now has.
func (b *Batch) MarkCropped(output string) int {
	it := &b.items[b.index]
	it.Status = StatusCropped
	it.Outputs = append(it.Outputs, output)
	return len(it.Outputs)
}

// MarkRejected records a rejected preview. Images that already produced an
// output stay cropped.
func (b *Batch) MarkRejected() {
	it := &b.items[b.index]
	if it.Status == StatusPending {
		it.Status = StatusRejected
	}
}

// Neighbors returns the paths within radius of the cursor, nearest first,
// excluding the current one.
func (b *Batch) Neighbors(radius int) []string {
	var out []string
	for d := 1; d <= radius; d++ {
		if i := b.index + d; i < len(b.items) {
			out = append(out, b.items[i].Path)
		}
		if i := b.index - d; i >= 0 {
			out = append(out, b.items[i].Path)
		}
	}
	return out
}

func (b *Batch) Summary() Summary {
	s := Summary{Total: len(b.items)}
	for _, it := range b.items {
		switch it.Status {
		case StatusPending:
			s.Pending++
		case StatusCropped:
			s.Cropped++
		case StatusRejected:
			s.Rejected++
		}
		s.Outputs += len(it.Outputs)
	}
	return s
}
