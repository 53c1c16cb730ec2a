package model

import "fmt"

// DuplicateOffsetCm is how far a duplicated element is shifted on both axes
// so the copy is visually distinguishable from its source.
const DuplicateOffsetCm = 5.0

// Mat defines the fixed-size rectangular surface all elements are positioned
// on. It is not an element and has no id.
type Mat struct {
	WidthCm  float64
	LengthCm float64
	Color    string
}

// DefaultMat returns the standard mat definition used for new documents.
func DefaultMat() Mat {
	return Mat{WidthCm: 50, LengthCm: 400, Color: "#2e7d32"}
}

// Document is the sole owner of the element collection and the mat
// definition. All mutation of elements passes through it. A Document is a
// single-owner value: it is not safe for concurrent use and is designed for
// exactly one editing session at a time.
type Document struct {
	Mat Mat

	elements []Element
	index    map[string]Element
	seq      int
	selected string
	dirty    bool
}

// NewDocument creates an empty document with the default mat.
func NewDocument() *Document {
	return &Document{
		Mat:   DefaultMat(),
		index: make(map[string]Element),
	}
}

// Elements returns the element list in insertion order. The returned slice
// is owned by the document and must not be modified.
func (d *Document) Elements() []Element {
	return d.elements
}

// Len returns the number of elements.
func (d *Document) Len() int {
	return len(d.elements)
}

// Create builds a defaulted element of the given kind, assigns its id and
// z-order, appends it and marks the document dirty. It returns
// ErrUnknownKind, with the document untouched, for an unrecognized kind.
func (d *Document) Create(kind Kind) (Element, error) {
	el, err := New(kind)
	if err != nil {
		return nil, err
	}
	return d.Add(el), nil
}

// Add appends an element to the document and marks it dirty. A missing or
// colliding id is replaced with a generated "<kind>_<sequence>" id; a z-order
// never set via SetZOrder gets the next-highest value. Add returns the
// element for convenience.
func (d *Document) Add(el Element) Element {
	b := el.base()
	if b.id == "" || d.index[b.id] != nil {
		b.id = d.nextID(el.Kind())
	}
	if !b.zSet {
		b.SetZOrder(d.nextZ())
	}
	d.elements = append(d.elements, el)
	d.index[b.id] = el
	d.dirty = true
	return el
}

// Get looks an element up by id. It has no side effects.
func (d *Document) Get(id string) (Element, bool) {
	el, ok := d.index[id]
	return el, ok
}

// Update applies fn to the element with the given id as a single atomic
// mutation and marks the document dirty. It reports whether the element was
// found; a missing id is a no-op.
func (d *Document) Update(id string, fn func(Element)) bool {
	el, ok := d.index[id]
	if !ok {
		return false
	}
	fn(el)
	d.dirty = true
	return true
}

// Delete removes the element with the given id and marks the document dirty.
// If the element was selected, the selection is cleared. It reports whether
// anything was removed.
func (d *Document) Delete(id string) bool {
	if _, ok := d.index[id]; !ok {
		return false
	}
	delete(d.index, id)
	for i, el := range d.elements {
		if el.ID() == id {
			d.elements = append(d.elements[:i], d.elements[i+1:]...)
			break
		}
	}
	if d.selected == id {
		d.selected = ""
	}
	d.dirty = true
	return true
}

// Duplicate deep-copies the element with the given id, assigns the copy a
// new id and the next-highest z-order, offsets its geometry by
// DuplicateOffsetCm on both axes and appends it. It returns the copy, or
// false if the id was not found.
func (d *Document) Duplicate(id string) (Element, bool) {
	src, ok := d.index[id]
	if !ok {
		return nil, false
	}
	cp := src.Clone()
	b := cp.base()
	b.id = ""
	b.zSet = false
	cp.Translate(DuplicateOffsetCm, DuplicateOffsetCm)
	return d.Add(cp), true
}

// MoveToFront sets the element's z-order to one more than the current
// maximum across all elements. No other element is renumbered, so repeated
// front/back toggling diverges z-order values; that is intentional. A
// missing id is a no-op.
func (d *Document) MoveToFront(id string) {
	el, ok := d.index[id]
	if !ok {
		return
	}
	el.base().SetZOrder(d.maxZ() + 1)
	d.dirty = true
}

// MoveToBack sets the element's z-order to one less than the current minimum
// across all elements. A missing id is a no-op.
func (d *Document) MoveToBack(id string) {
	el, ok := d.index[id]
	if !ok {
		return
	}
	el.base().SetZOrder(d.minZ() - 1)
	d.dirty = true
}

// Select marks the element with the given id as the selected element and
// reports whether it exists. At most one element is selected at a time.
func (d *Document) Select(id string) bool {
	if _, ok := d.index[id]; !ok {
		return false
	}
	d.selected = id
	return true
}

// ClearSelection removes any current selection.
func (d *Document) ClearSelection() {
	d.selected = ""
}

// Selected returns the currently selected element, if any.
func (d *Document) Selected() (Element, bool) {
	if d.selected == "" {
		return nil, false
	}
	el, ok := d.index[d.selected]
	return el, ok
}

// SelectedID returns the id of the selected element, or "".
func (d *Document) SelectedID() string {
	return d.selected
}

// Dirty reports whether the document has unsaved mutations.
func (d *Document) Dirty() bool {
	return d.dirty
}

// MarkSaved clears the dirty flag. It is called by the persistence
// collaborator after a successful save, and after a successful load to mark
// the freshly loaded document clean.
func (d *Document) MarkSaved() {
	d.dirty = false
}

// ElementAt returns the topmost element whose geometry contains p, applying
// the given hit tolerance. Elements with higher z-order win; ties go to the
// later-inserted element.
func (d *Document) ElementAt(p Point, tolerance float64) (Element, bool) {
	var hit Element
	for _, el := range d.elements {
		if !el.HitTest(p, tolerance) {
			continue
		}
		if hit == nil || el.ZOrder() >= hit.ZOrder() {
			hit = el
		}
	}
	return hit, hit != nil
}

// nextZ returns the z-order for a newly appended element: 0 for the first
// element, one more than the current maximum otherwise.
func (d *Document) nextZ() int {
	if len(d.elements) == 0 {
		return 0
	}
	return d.maxZ() + 1
}

func (d *Document) nextID(kind Kind) string {
	for {
		id := fmt.Sprintf("%s_%d", kind, d.seq)
		d.seq++
		if d.index[id] == nil {
			return id
		}
	}
}

func (d *Document) maxZ() int {
	max := 0
	for i, el := range d.elements {
		if i == 0 || el.ZOrder() > max {
			max = el.ZOrder()
		}
	}
	return max
}

func (d *Document) minZ() int {
	min := 0
	for i, el := range d.elements {
		if i == 0 || el.ZOrder() < min {
			min = el.ZOrder()
		}
	}
	return min
}
