// Package document holds the rows of one category and every mutation the
// interaction layer performs on them.
package document

import "strings"

// ResourceKind names one of the three fixed resource lists of a row.
type ResourceKind string

const (
	KindVideos    ResourceKind = "videos"
	KindTrueFalse ResourceKind = "trueFalse"
	KindQuizzes   ResourceKind = "quizzes"
)

// Kinds lists every resource kind in display order.
var Kinds = []ResourceKind{KindVideos, KindTrueFalse, KindQuizzes}

// Label returns the display title of the kind.
func (k ResourceKind) Label() string {
	switch k {
	case KindVideos:
		return "Videos"
	case KindTrueFalse:
		return "Verdadero/Falso"
	case KindQuizzes:
		return "Cuestionarios"
	default:
		return string(k)
	}
}

// Valid reports whether k is one of Kinds.
func (k ResourceKind) Valid() bool {
	switch k {
	case KindVideos, KindTrueFalse, KindQuizzes:
		return true
	}
	return false
}

// Resource is a named, optionally linked item under a row.
type Resource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Link string `json:"link,omitempty"`
}

// Resources groups a row's resource lists. All three lists are always
// encoded, empty ones as [].
type Resources struct {
	Videos    []Resource `json:"videos"`
	TrueFalse []Resource `json:"trueFalse"`
	Quizzes   []Resource `json:"quizzes"`
}

// List returns the resources of kind k.
func (r Resources) List(k ResourceKind) []Resource {
	switch k {
	case KindVideos:
		return r.Videos
	case KindTrueFalse:
		return r.TrueFalse
	case KindQuizzes:
		return r.Quizzes
	}
	return nil
}

func (r *Resources) set(k ResourceKind, list []Resource) {
	switch k {
	case KindVideos:
		r.Videos = list
	case KindTrueFalse:
		r.TrueFalse = list
	case KindQuizzes:
		r.Quizzes = list
	}
}

// Count returns the number of resources across all kinds.
func (r Resources) Count() int {
	return len(r.Videos) + len(r.TrueFalse) + len(r.Quizzes)
}

// Normalized returns a copy where every list is non-nil.
func (r Resources) Normalized() Resources {
	out := Resources{
		Videos:    cloneResources(r.Videos),
		TrueFalse: cloneResources(r.TrueFalse),
		Quizzes:   cloneResources(r.Quizzes),
	}
	return out
}

func cloneResources(in []Resource) []Resource {
	out := make([]Resource, len(in))
	copy(out, in)
	return out
}

// Row is a single task or note in a category.
type Row struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Checked   bool      `json:"checked"`
	Link      string    `json:"link,omitempty"`
	Resources Resources `json:"resources"`
}

// NewRow creates an unchecked row with empty resource lists.
func NewRow(id, name string) Row {
	return Row{ID: id, Name: name, Resources: Resources{}.Normalized()}
}

// HasLink reports whether the row carries a non-blank link.
func (r Row) HasLink() bool {
	return strings.TrimSpace(r.Link) != ""
}

// Meaningful reports whether the row holds anything worth keeping: a name,
// a link, any resource, or the checked flag.
func (r Row) Meaningful() bool {
	return strings.TrimSpace(r.Name) != "" || r.HasLink() || r.Resources.Count() > 0 || r.Checked
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	r.Resources = r.Resources.Normalized()
	return r
}

// Ref points at a row, or at a resource when Kind and ResID are set.
type Ref struct {
	RowID string
	Kind  ResourceKind
	ResID string
}

// RowRef returns a reference to a row.
func RowRef(rowID string) Ref { return Ref{RowID: rowID} }

// ResourceRef returns a reference to a resource.
func ResourceRef(rowID string, kind ResourceKind, resID string) Ref {
	return Ref{RowID: rowID, Kind: kind, ResID: resID}
}

// IsResource reports whether the reference targets a resource.
func (r Ref) IsResource() bool { return r.Kind != "" }

// IsZero reports whether the reference is empty.
func (r Ref) IsZero() bool { return r == Ref{} }
