package document

import (
	"fmt"
	"strings"
)

// Document is the in-memory row list of the open category. It is owned by
// the interaction layer and mutated synchronously.
type Document struct {
	rows []Row
	ids  *IDSource
}

// New creates a document over rows. The rows are copied.
func New(rows []Row, ids *IDSource) *Document {
	if ids == nil {
		ids = NewIDSource()
	}
	d := &Document{ids: ids}
	d.Reset(rows)
	return d
}

// Reset replaces the document contents with a copy of rows. Rows and
// resources whose id is empty or already taken in their list get a fresh id.
func (d *Document) Reset(rows []Row) {
	d.rows = make([]Row, 0, len(rows))
	taken := make(map[string]bool, len(rows))
	for _, r := range rows {
		taken[r.ID] = true
	}
	used := make(map[string]bool, len(rows))
	for _, r := range rows {
		c := r.Clone()
		if c.ID == "" || used[c.ID] {
			c.ID = d.freshID(taken)
		}
		used[c.ID] = true
		d.repairResources(c.Resources.Videos)
		d.repairResources(c.Resources.TrueFalse)
		d.repairResources(c.Resources.Quizzes)
		d.rows = append(d.rows, c)
	}
}

func (d *Document) repairResources(list []Resource) {
	taken := make(map[string]bool, len(list))
	for _, r := range list {
		taken[r.ID] = true
	}
	used := make(map[string]bool, len(list))
	for i := range list {
		if list[i].ID == "" || used[list[i].ID] {
			list[i].ID = d.freshID(taken)
		}
		used[list[i].ID] = true
	}
}

// freshID returns an id not in taken and records it there.
func (d *Document) freshID(taken map[string]bool) string {
	for {
		id := d.ids.Next()
		if !taken[id] {
			taken[id] = true
			return id
		}
	}
}

// Rows returns the rows in order. Callers must not modify the slice.
func (d *Document) Rows() []Row { return d.rows }

// Snapshot returns a deep copy of the rows, safe to hand to storage.
func (d *Document) Snapshot() []Row {
	out := make([]Row, len(d.rows))
	for i, r := range d.rows {
		out[i] = r.Clone()
	}
	return out
}

// Len returns the number of rows.
func (d *Document) Len() int { return len(d.rows) }

// Active returns the unchecked rows in order.
func (d *Document) Active() []Row { return d.filter(false) }

// Archived returns the checked rows in order.
func (d *Document) Archived() []Row { return d.filter(true) }

func (d *Document) filter(checked bool) []Row {
	var out []Row
	for _, r := range d.rows {
		if r.Checked == checked {
			out = append(out, r)
		}
	}
	return out
}

// Row returns the row with id.
func (d *Document) Row(id string) (Row, bool) {
	i := d.index(id)
	if i < 0 {
		return Row{}, false
	}
	return d.rows[i], true
}

// HasMeaningfulContent reports whether any row is worth keeping.
func (d *Document) HasMeaningfulContent() bool {
	for _, r := range d.rows {
		if r.Meaningful() {
			return true
		}
	}
	return false
}

func (d *Document) index(id string) int {
	for i, r := range d.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// nextRowID returns an id not used by any row.
func (d *Document) nextRowID() string {
	for {
		id := d.ids.Next()
		if d.index(id) < 0 {
			return id
		}
	}
}

// AddRow appends a row named "Fila N".
func (d *Document) AddRow() Row {
	row := NewRow(d.nextRowID(), fmt.Sprintf("Fila %d", len(d.rows)+1))
	d.rows = append(d.rows, row)
	return row
}

// InsertRowAfter inserts an empty-named row right after afterID, or at the
// end when afterID is unknown.
func (d *Document) InsertRowAfter(afterID string) Row {
	row := NewRow(d.nextRowID(), "")
	i := d.index(afterID)
	if i < 0 {
		d.rows = append(d.rows, row)
		return row
	}
	d.rows = append(d.rows, Row{})
	copy(d.rows[i+2:], d.rows[i+1:])
	d.rows[i+1] = row
	return row
}

// ToggleChecked flips the archive flag of a row.
func (d *Document) ToggleChecked(id string) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}
	d.rows[i].Checked = !d.rows[i].Checked
	return true
}

// Resources returns the resources of kind under a row.
func (d *Document) Resources(rowID string, kind ResourceKind) []Resource {
	r, ok := d.Row(rowID)
	if !ok {
		return nil
	}
	return r.Resources.List(kind)
}

func (d *Document) nextResourceID(list []Resource) string {
	for {
		id := d.ids.Next()
		if resourceIndex(list, id) < 0 {
			return id
		}
	}
}

func resourceIndex(list []Resource, id string) int {
	for i, r := range list {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// AddResource appends a resource named "Recurso N" under a row.
func (d *Document) AddResource(rowID string, kind ResourceKind) (Resource, bool) {
	i := d.index(rowID)
	if i < 0 || !kind.Valid() {
		return Resource{}, false
	}
	list := d.rows[i].Resources.List(kind)
	res := Resource{ID: d.nextResourceID(list), Name: fmt.Sprintf("Recurso %d", len(list)+1)}
	next := append(cloneResources(list), res)
	d.rows[i].Resources.set(kind, next)
	return res, true
}

// InsertResourceAfter inserts an empty-named resource after afterID, or at
// the end of the list when afterID is unknown.
func (d *Document) InsertResourceAfter(rowID string, kind ResourceKind, afterID string) (Resource, bool) {
	i := d.index(rowID)
	if i < 0 || !kind.Valid() {
		return Resource{}, false
	}
	list := d.rows[i].Resources.List(kind)
	res := Resource{ID: d.nextResourceID(list)}
	at := resourceIndex(list, afterID)

	next := make([]Resource, 0, len(list)+1)
	if at < 0 {
		next = append(next, list...)
		next = append(next, res)
	} else {
		next = append(next, list[:at+1]...)
		next = append(next, res)
		next = append(next, list[at+1:]...)
	}
	d.rows[i].Resources.set(kind, next)
	return res, true
}

// Exists reports whether ref points at an existing row or resource.
func (d *Document) Exists(ref Ref) bool {
	i := d.index(ref.RowID)
	if i < 0 {
		return false
	}
	if !ref.IsResource() {
		return true
	}
	return resourceIndex(d.rows[i].Resources.List(ref.Kind), ref.ResID) >= 0
}

// Name returns the name of the referenced entity.
func (d *Document) Name(ref Ref) string {
	name, _ := d.field(ref, func(r *Row) string { return r.Name }, func(r *Resource) string { return r.Name })
	return name
}

// Link returns the link of the referenced entity, "" when unset.
func (d *Document) Link(ref Ref) string {
	link, _ := d.field(ref, func(r *Row) string { return r.Link }, func(r *Resource) string { return r.Link })
	return strings.TrimSpace(link)
}

func (d *Document) field(ref Ref, row func(*Row) string, res func(*Resource) string) (string, bool) {
	var out string
	ok := d.apply(ref, func(r *Row) { out = row(r) }, func(r *Resource) { out = res(r) })
	return out, ok
}

// Rename replaces the name of the referenced entity.
func (d *Document) Rename(ref Ref, name string) bool {
	return d.apply(ref,
		func(r *Row) { r.Name = name },
		func(r *Resource) { r.Name = name })
}

// SetLink assigns a trimmed link. An empty link clears the field.
func (d *Document) SetLink(ref Ref, link string) bool {
	link = strings.TrimSpace(link)
	return d.apply(ref,
		func(r *Row) { r.Link = link },
		func(r *Resource) { r.Link = link })
}

// ClearLink removes the link of the referenced entity.
func (d *Document) ClearLink(ref Ref) bool {
	return d.SetLink(ref, "")
}

// Delete removes the referenced entity from its list.
func (d *Document) Delete(ref Ref) bool {
	i := d.index(ref.RowID)
	if i < 0 {
		return false
	}
	if !ref.IsResource() {
		d.rows = append(d.rows[:i:i], d.rows[i+1:]...)
		return true
	}
	list := d.rows[i].Resources.List(ref.Kind)
	j := resourceIndex(list, ref.ResID)
	if j < 0 {
		return false
	}
	next := make([]Resource, 0, len(list)-1)
	next = append(next, list[:j]...)
	next = append(next, list[j+1:]...)
	d.rows[i].Resources.set(ref.Kind, next)
	return true
}

// apply runs onRow or onRes against the referenced entity in place.
func (d *Document) apply(ref Ref, onRow func(*Row), onRes func(*Resource)) bool {
	i := d.index(ref.RowID)
	if i < 0 {
		return false
	}
	if !ref.IsResource() {
		onRow(&d.rows[i])
		return true
	}
	list := cloneResources(d.rows[i].Resources.List(ref.Kind))
	j := resourceIndex(list, ref.ResID)
	if j < 0 {
		return false
	}
	onRes(&list[j])
	d.rows[i].Resources.set(ref.Kind, list)
	return true
}
