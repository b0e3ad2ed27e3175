package pod

import (
	"github.com/google/uuid"

	"adpod/internal/cpl"
)

// Workset maintains the ordered uploaded-CPL set between the upload and
// validation steps. Any mutation invalidates a previous validation pass, so
// callers must re-validate before generating. A Workset is not safe for
// concurrent mutation; the upload flow drives it from a single logical
// thread.
type Workset struct {
	items     []UploadedCPL
	validated bool
}

// NewWorkset returns an empty working set.
func NewWorkset() *Workset {
	return &Workset{}
}

// Add appends an extracted CPL to the set and returns the created entry.
func (w *Workset) Add(fileName string, metadata cpl.Metadata) UploadedCPL {
	item := UploadedCPL{
		ID:       uuid.NewString(),
		FileName: fileName,
		Metadata: metadata,
		Order:    len(w.items) + 1,
	}
	w.items = append(w.items, item)
	w.validated = false
	return item
}

// Remove deletes the entry with the given id and renumbers the remaining
// entries so display order stays contiguous. It reports whether an entry was
// removed.
func (w *Workset) Remove(id string) bool {
	index := -1
	for i, item := range w.items {
		if item.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return false
	}
	w.items = append(w.items[:index], w.items[index+1:]...)
	for i := range w.items {
		w.items[i].Order = i + 1
	}
	w.validated = false
	return true
}

// MarkValidated records a successful whole-set validation pass, flipping
// every entry's validated flag and clearing per-entry errors.
func (w *Workset) MarkValidated() {
	for i := range w.items {
		w.items[i].Validated = true
		w.items[i].ValidationErrors = nil
	}
	w.validated = true
}

// Validated reports whether the current set has passed validation since its
// last mutation.
func (w *Workset) Validated() bool {
	return w.validated
}

// Len returns the number of entries in the set.
func (w *Workset) Len() int {
	return len(w.items)
}

// Items returns a copy of the entries in display order.
func (w *Workset) Items() []UploadedCPL {
	items := make([]UploadedCPL, len(w.items))
	copy(items, w.items)
	return items
}
