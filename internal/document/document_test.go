package document

import (
	"reflect"
	"testing"
	"time"
)

// fixedClock returns the same instant on every call so ids rely on the
// monotonic bump.
func fixedClock() func() time.Time {
	t := time.UnixMilli(1700000000000)
	return func() time.Time { return t }
}

func newDoc(rows ...Row) *Document {
	return New(rows, NewIDSourceWithClock(fixedClock()))
}

func ids(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestIDSource_Monotonic(t *testing.T) {
	src := NewIDSourceWithClock(fixedClock())
	a, b, c := src.Next(), src.Next(), src.Next()
	if a != "1700000000000" || b != "1700000000001" || c != "1700000000002" {
		t.Errorf("ids = %s %s %s", a, b, c)
	}
}

func TestAddRow(t *testing.T) {
	d := newDoc()
	r1 := d.AddRow()
	r2 := d.AddRow()

	if r1.Name != "Fila 1" || r2.Name != "Fila 2" {
		t.Errorf("names = %q, %q", r1.Name, r2.Name)
	}
	if r1.ID == r2.ID {
		t.Error("row ids must be unique")
	}
	if r1.Resources.Videos == nil || r1.Resources.TrueFalse == nil || r1.Resources.Quizzes == nil {
		t.Error("new rows must carry all three resource lists")
	}
}

func TestAddRow_SkipsExistingIDs(t *testing.T) {
	d := newDoc(NewRow("1700000000000", "a"), NewRow("1700000000001", "b"))
	r := d.AddRow()
	if r.ID != "1700000000002" {
		t.Errorf("id = %s, want the first unused id", r.ID)
	}
}

func TestInsertRowAfter(t *testing.T) {
	d := newDoc(NewRow("a", "A"), NewRow("b", "B"))

	mid := d.InsertRowAfter("a")
	if mid.Name != "" {
		t.Errorf("inserted row name = %q, want empty", mid.Name)
	}
	if got := ids(d.Rows()); !reflect.DeepEqual(got, []string{"a", mid.ID, "b"}) {
		t.Errorf("order = %v", got)
	}

	end := d.InsertRowAfter("unknown")
	if got := ids(d.Rows()); got[len(got)-1] != end.ID {
		t.Errorf("unknown anchor should append, order = %v", got)
	}
}

func TestToggleChecked_MovesBetweenViews(t *testing.T) {
	d := newDoc(NewRow("a", "A"), NewRow("b", "B"))
	d.SetLink(RowRef("a"), "https://example.com")
	before, _ := d.Row("a")

	if !d.ToggleChecked("a") {
		t.Fatal("toggle failed")
	}
	if got := ids(d.Active()); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("active = %v, want [b]", got)
	}
	if got := ids(d.Archived()); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("archived = %v, want [a]", got)
	}

	after, _ := d.Row("a")
	after.Checked = before.Checked
	if !reflect.DeepEqual(before, after) {
		t.Errorf("toggle changed more than checked: %+v vs %+v", before, after)
	}

	d.ToggleChecked("a")
	if got := ids(d.Active()); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("restored order = %v, want [a b]", got)
	}
}

func TestAddResource_OnlyTouchesTarget(t *testing.T) {
	d := newDoc(NewRow("a", "A"), NewRow("b", "B"))
	d.AddResource("b", KindQuizzes)
	before := d.Snapshot()

	res, ok := d.AddResource("a", KindVideos)
	if !ok {
		t.Fatal("AddResource failed")
	}
	if res.Name != "Recurso 1" {
		t.Errorf("name = %q, want Recurso 1", res.Name)
	}

	after := d.Snapshot()
	if len(after[0].Resources.Videos) != len(before[0].Resources.Videos)+1 {
		t.Error("videos count of a should grow by one")
	}
	if !reflect.DeepEqual(after[0].Resources.TrueFalse, before[0].Resources.TrueFalse) ||
		!reflect.DeepEqual(after[0].Resources.Quizzes, before[0].Resources.Quizzes) {
		t.Error("other kinds of a changed")
	}
	if !reflect.DeepEqual(after[1], before[1]) {
		t.Error("row b changed")
	}
}

func TestAddResource_Invalid(t *testing.T) {
	d := newDoc(NewRow("a", "A"))
	if _, ok := d.AddResource("missing", KindVideos); ok {
		t.Error("unknown row should fail")
	}
	if _, ok := d.AddResource("a", ResourceKind("audio")); ok {
		t.Error("unknown kind should fail")
	}
}

func TestInsertResourceAfter(t *testing.T) {
	d := newDoc(NewRow("a", "A"))
	first, _ := d.AddResource("a", KindTrueFalse)
	second, _ := d.AddResource("a", KindTrueFalse)

	mid, ok := d.InsertResourceAfter("a", KindTrueFalse, first.ID)
	if !ok {
		t.Fatal("insert failed")
	}
	list := d.Resources("a", KindTrueFalse)
	got := []string{list[0].ID, list[1].ID, list[2].ID}
	want := []string{first.ID, mid.ID, second.ID}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if mid.Name != "" {
		t.Errorf("inserted name = %q, want empty", mid.Name)
	}
}

func TestRefOperations(t *testing.T) {
	d := newDoc(NewRow("a", "A"))
	res, _ := d.AddResource("a", KindVideos)
	ref := ResourceRef("a", KindVideos, res.ID)

	if !d.Rename(ref, "intro") || d.Name(ref) != "intro" {
		t.Errorf("rename resource: name = %q", d.Name(ref))
	}
	if !d.SetLink(ref, "  https://v.example  ") || d.Link(ref) != "https://v.example" {
		t.Errorf("link = %q", d.Link(ref))
	}
	if !d.SetLink(RowRef("a"), "https://row.example") {
		t.Fatal("row link failed")
	}
	if d.Link(RowRef("a")) != "https://row.example" {
		t.Error("row link not stored")
	}

	d.SetLink(ref, "   ")
	if d.Link(ref) != "" {
		t.Error("blank link should clear the field")
	}

	d.ClearLink(RowRef("a"))
	if r, _ := d.Row("a"); r.Link != "" {
		t.Error("ClearLink should unset the row link")
	}

	if !d.Delete(ref) || d.Exists(ref) {
		t.Error("resource should be deleted")
	}
	if d.Delete(ref) {
		t.Error("second delete should report false")
	}
	if !d.Delete(RowRef("a")) || d.Len() != 0 {
		t.Error("row should be deleted")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	d := newDoc(NewRow("a", "A"))
	d.AddResource("a", KindVideos)
	snap := d.Snapshot()

	d.Rename(ResourceRef("a", KindVideos, snap[0].Resources.Videos[0].ID), "changed")
	if snap[0].Resources.Videos[0].Name != "Recurso 1" {
		t.Error("snapshot must not alias document state")
	}
}

func TestHasMeaningfulContent(t *testing.T) {
	withResource := NewRow("r", "")
	withResource.Resources.Quizzes = []Resource{{ID: "q"}}

	tests := []struct {
		name string
		rows []Row
		want bool
	}{
		{"empty", nil, false},
		{"blank names", []Row{NewRow("a", "  "), NewRow("b", "")}, false},
		{"named", []Row{NewRow("a", "x")}, true},
		{"linked", []Row{{ID: "a", Link: "https://x"}}, true},
		{"blank link", []Row{{ID: "a", Link: "  "}}, false},
		{"checked", []Row{{ID: "a", Checked: true}}, true},
		{"resource", []Row{withResource}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newDoc(tt.rows...).HasMeaningfulContent(); got != tt.want {
				t.Errorf("HasMeaningfulContent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReset_RepairsMissingAndDuplicateIDs(t *testing.T) {
	dupRes := NewRow("1700000000000", "dup res")
	dupRes.Resources.Videos = []Resource{{ID: "v"}, {ID: "v"}, {Name: "no id"}}

	d := newDoc(
		NewRow("", "first"),
		NewRow("", "second"),
		NewRow("7", "third"),
		NewRow("7", "fourth"),
		dupRes,
	)

	seen := map[string]bool{}
	for _, r := range d.Rows() {
		if r.ID == "" || seen[r.ID] {
			t.Fatalf("row ids not unique: %v", ids(d.Rows()))
		}
		seen[r.ID] = true
	}
	if got := d.Rows()[2].ID; got != "7" {
		t.Errorf("first holder of an id keeps it, got %q", got)
	}
	if got := d.Rows()[4].ID; got != "1700000000000" {
		t.Errorf("fresh ids must skip ids already present, got %q", got)
	}

	videos := d.Rows()[4].Resources.Videos
	resSeen := map[string]bool{}
	for _, v := range videos {
		if v.ID == "" || resSeen[v.ID] {
			t.Fatalf("resource ids not unique: %+v", videos)
		}
		resSeen[v.ID] = true
	}
	if videos[0].ID != "v" {
		t.Errorf("first resource id changed to %q", videos[0].ID)
	}

	// Deleting the second id-less row leaves the first alone.
	if !d.Delete(RowRef(d.Rows()[1].ID)) {
		t.Fatal("delete failed")
	}
	if d.Rows()[0].Name != "first" || d.Len() != 4 {
		t.Errorf("rows after delete = %v", ids(d.Rows()))
	}
}

func TestRef_IsResourceByKind(t *testing.T) {
	if !ResourceRef("1", KindVideos, "").IsResource() {
		t.Error("resource ref with an empty id must stay a resource ref")
	}
	if RowRef("1").IsResource() {
		t.Error("row ref reported as resource")
	}
}
