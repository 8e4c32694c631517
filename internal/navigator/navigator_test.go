package navigator

import (
	"reflect"
	"testing"
	"time"

	"github.com/marcus/notas/internal/document"
	"github.com/marcus/notas/internal/kv"
	"github.com/marcus/notas/internal/store"
)

var fixed = time.UnixMilli(1700000000000)

func setup(t *testing.T, categories ...string) (*Navigator, *store.Store) {
	t.Helper()
	st := store.New(kv.NewMemory(), nil)
	if err := st.SaveCategories(categories); err != nil {
		t.Fatal(err)
	}
	n := New(st, nil)
	n.SetClock(func() time.Time { return fixed })
	return n, st
}

func TestStep(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		current    string
		meaningful bool
		dir        Direction
		want       Outcome
		wantIndex  []string
	}{
		{
			name:      "home backward with no categories stays",
			current:   "",
			dir:       Backward,
			want:      Outcome{},
			wantIndex: []string{},
		},
		{
			name:       "home backward wraps to last",
			categories: []string{"a", "b"},
			dir:        Backward,
			want:       Outcome{Target: "b", Moved: true},
			wantIndex:  []string{"a", "b"},
		},
		{
			name:       "home forward goes to first",
			categories: []string{"a", "b"},
			dir:        Forward,
			want:       Outcome{Target: "a", Moved: true},
			wantIndex:  []string{"a", "b"},
		},
		{
			name:       "home forward creates when meaningful",
			meaningful: true,
			dir:        Forward,
			want:       Outcome{Target: "nota-1700000000000", Created: true, Moved: true},
			wantIndex:  []string{"nota-1700000000000"},
		},
		{
			name:      "home forward stays when empty",
			dir:       Forward,
			want:      Outcome{},
			wantIndex: []string{},
		},
		{
			name:       "unknown category is registered",
			categories: []string{"a"},
			current:    "x",
			dir:        Forward,
			want:       Outcome{Target: "x"},
			wantIndex:  []string{"a", "x"},
		},
		{
			name:       "in range keeps meaningful current",
			categories: []string{"a", "b"},
			current:    "a",
			meaningful: true,
			dir:        Forward,
			want:       Outcome{Target: "b", Moved: true},
			wantIndex:  []string{"a", "b"},
		},
		{
			name:       "in range prunes empty current",
			categories: []string{"a", "b", "c"},
			current:    "b",
			dir:        Backward,
			want:       Outcome{Target: "a", Pruned: true, Moved: true},
			wantIndex:  []string{"a", "c"},
		},
		{
			name:       "past the end creates when meaningful",
			categories: []string{"a"},
			current:    "a",
			meaningful: true,
			dir:        Forward,
			want:       Outcome{Target: "nota-1700000000000", Created: true, Moved: true},
			wantIndex:  []string{"a", "nota-1700000000000"},
		},
		{
			name:       "past the end prunes empty and goes home",
			categories: []string{"a", "b"},
			current:    "b",
			dir:        Forward,
			want:       Outcome{Pruned: true, Moved: true},
			wantIndex:  []string{"a"},
		},
		{
			name:       "before the start goes home",
			categories: []string{"a", "b"},
			current:    "a",
			meaningful: true,
			dir:        Backward,
			want:       Outcome{Moved: true},
			wantIndex:  []string{"a", "b"},
		},
		{
			name:       "before the start prunes empty",
			categories: []string{"a", "b"},
			current:    "a",
			dir:        Backward,
			want:       Outcome{Pruned: true, Moved: true},
			wantIndex:  []string{"b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, st := setup(t, tt.categories...)
			got, err := n.Step(tt.current, tt.meaningful, tt.dir)
			if err != nil {
				t.Fatalf("Step: %v", err)
			}
			if got != tt.want {
				t.Errorf("Step = %+v, want %+v", got, tt.want)
			}
			index := st.Categories()
			if index == nil {
				index = []string{}
			}
			if !reflect.DeepEqual(index, tt.wantIndex) {
				t.Errorf("index = %v, want %v", index, tt.wantIndex)
			}
		})
	}
}

func TestStep_DeleteLastRowThenLeave(t *testing.T) {
	n, st := setup(t, "math", "art")

	doc := document.New(nil, document.NewIDSourceWithClock(func() time.Time { return fixed }))
	row := doc.AddRow()
	if err := st.SaveCategory("math", doc.Snapshot()); err != nil {
		t.Fatal(err)
	}

	doc.Delete(document.RowRef(row.ID))
	if err := st.SaveCategory("math", doc.Snapshot()); err != nil {
		t.Fatal(err)
	}

	out, err := n.Step("math", doc.HasMeaningfulContent(), Forward)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Pruned || out.Target != "art" {
		t.Errorf("outcome = %+v", out)
	}
	if got := st.Categories(); !reflect.DeepEqual(got, []string{"art"}) {
		t.Errorf("index = %v", got)
	}
	if rows := st.LoadCategory("math"); len(rows) != 0 {
		t.Errorf("math rows still stored: %+v", rows)
	}
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"named", "  Física Cuántica ", "fisica-cuantica"},
		{"blank", "   ", "categoria-1700000000000"},
		{"unsluggable", "日本語", "categoria-1700000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, st := setup(t, "a")
			got, err := n.Create(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Create(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if idx := st.Categories(); !reflect.DeepEqual(idx, []string{"a", tt.want}) {
				t.Errorf("index = %v", idx)
			}
		})
	}

	n, st := setup(t, "a")
	if _, err := n.Create("A"); err != nil {
		t.Fatal(err)
	}
	if idx := st.Categories(); !reflect.DeepEqual(idx, []string{"a"}) {
		t.Errorf("existing slug duplicated: %v", idx)
	}
}
