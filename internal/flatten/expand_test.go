package flatten

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func expandFor(t *testing.T, input string, paths []string) []Row {
	t.Helper()
	root := decode(t, input)
	return Expand(root, Locate(root, paths), paths)
}

func cell(t *testing.T, row Row, path string) string {
	t.Helper()
	v, ok := row.Values[path]
	if !ok {
		t.Fatalf("expected value for %q, row has %v", path, row.Values)
	}
	return v.JSON()
}

func TestExpand_SingleRowWithoutArrays(t *testing.T) {
	rows := expandFor(t, `{"a":1,"b":{"c":2}}`, []string{"a", "b.c"})

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Index != 0 {
		t.Errorf("expected no index on single row, got %d", row.Index)
	}
	if got := cell(t, row, "a"); got != "1" {
		t.Errorf("a: expected 1, got %s", got)
	}
	if got := cell(t, row, "b.c"); got != "2" {
		t.Errorf("b.c: expected 2, got %s", got)
	}
}

func TestExpand_PivotProducesOneRowPerElement(t *testing.T) {
	rows := expandFor(t,
		`{"users":[{"id":1,"name":"x"},{"id":2,"name":"y"}]}`,
		[]string{"users.id", "users.name"})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for i, want := range []struct{ id, name string }{{"1", `"x"`}, {"2", `"y"`}} {
		if rows[i].Index != i+1 {
			t.Errorf("row %d: expected index %d, got %d", i, i+1, rows[i].Index)
		}
		if got := cell(t, rows[i], "users.id"); got != want.id {
			t.Errorf("row %d id: expected %s, got %s", i, want.id, got)
		}
		if got := cell(t, rows[i], "users.name"); got != want.name {
			t.Errorf("row %d name: expected %s, got %s", i, want.name, got)
		}
	}
}

func TestExpand_AncestorValuesBroadcast(t *testing.T) {
	rows := expandFor(t,
		`{"a":"outer","users":[{"id":1}]}`,
		[]string{"a", "users.id"})

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Index != 1 {
		t.Errorf("expected index 1, got %d", row.Index)
	}
	if got := cell(t, row, "a"); got != `"outer"` {
		t.Errorf("a: expected \"outer\", got %s", got)
	}
	if got := cell(t, row, "users.id"); got != "1" {
		t.Errorf("users.id: expected 1, got %s", got)
	}
}

func TestExpand_NestedArraysCrossExpand(t *testing.T) {
	rows := expandFor(t,
		`{"groups":[{"name":"G1","items":[{"v":1},{"v":2}]}]}`,
		[]string{"groups.name", "groups.items.v"})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for i, wantV := range []string{"1", "2"} {
		if got := cell(t, rows[i], "groups.name"); got != `"G1"` {
			t.Errorf("row %d name: expected \"G1\", got %s", i, got)
		}
		if got := cell(t, rows[i], "groups.items.v"); got != wantV {
			t.Errorf("row %d v: expected %s, got %s", i, wantV, got)
		}
	}
}

func TestExpand_CrossExpansionOverSeveralGroups(t *testing.T) {
	rows := expandFor(t,
		`{"groups":[
			{"name":"G1","items":[{"v":1},{"v":2}]},
			{"name":"G2","items":[{"v":3},{"v":4},{"v":5}]}
		]}`,
		[]string{"groups.name", "groups.items.v"})

	if len(rows) != 5 {
		t.Fatalf("expected 5 rows (2+3), got %d", len(rows))
	}

	wantNames := []string{`"G1"`, `"G1"`, `"G2"`, `"G2"`, `"G2"`}
	wantVs := []string{"1", "2", "3", "4", "5"}
	wantIdx := []int{1, 2, 1, 2, 3} // position within each group's items
	for i := range rows {
		if got := cell(t, rows[i], "groups.name"); got != wantNames[i] {
			t.Errorf("row %d name: expected %s, got %s", i, wantNames[i], got)
		}
		if got := cell(t, rows[i], "groups.items.v"); got != wantVs[i] {
			t.Errorf("row %d v: expected %s, got %s", i, wantVs[i], got)
		}
		if rows[i].Index != wantIdx[i] {
			t.Errorf("row %d: expected index %d, got %d", i, wantIdx[i], rows[i].Index)
		}
	}
}

func TestExpand_MissingBranchDroppedSilently(t *testing.T) {
	rows := expandFor(t,
		`{"groups":[
			{"name":"G1","items":[{"v":1}]},
			{"name":"G2"},
			{"name":"G3","items":[{"v":3}]}
		]}`,
		[]string{"groups.name", "groups.items.v"})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows (G2 has no items), got %d", len(rows))
	}
	if got := cell(t, rows[0], "groups.name"); got != `"G1"` {
		t.Errorf("row 0 name: expected \"G1\", got %s", got)
	}
	if got := cell(t, rows[1], "groups.name"); got != `"G3"` {
		t.Errorf("row 1 name: expected \"G3\", got %s", got)
	}
}

func TestExpand_EmptyPivotInstanceContributesNoRows(t *testing.T) {
	rows := expandFor(t,
		`{"groups":[
			{"name":"G1","items":[{"v":1}]},
			{"name":"G2","items":[]}
		]}`,
		[]string{"groups.name", "groups.items.v"})

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if got := cell(t, rows[0], "groups.name"); got != `"G1"` {
		t.Errorf("name: expected \"G1\", got %s", got)
	}
}

func TestExpand_PivotElementMissingKeyLeavesValueAbsent(t *testing.T) {
	rows := expandFor(t,
		`{"users":[{"id":1,"name":"x"},{"id":2}]}`,
		[]string{"users.id", "users.name"})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if _, ok := rows[1].Values["users.name"]; ok {
		t.Error("expected users.name to be absent on the second row")
	}
}

func TestExpand_RootArrayOfObjects(t *testing.T) {
	rows := expandFor(t,
		`[{"name":"Ada","age":36},{"name":"Grace"}]`,
		[]string{"name", "age"})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Index != 1 || rows[1].Index != 2 {
		t.Errorf("expected indexes 1 and 2, got %d and %d", rows[0].Index, rows[1].Index)
	}
	if got := cell(t, rows[0], "name"); got != `"Ada"` {
		t.Errorf("row 0 name: expected \"Ada\", got %s", got)
	}
	if _, ok := rows[1].Values["age"]; ok {
		t.Error("expected age to be absent on the second row")
	}
}

func TestExpand_RootArrayOfPrimitives(t *testing.T) {
	rows := expandFor(t, `[10,20,30]`, []string{""})

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, want := range []string{"10", "20", "30"} {
		if rows[i].Index != i+1 {
			t.Errorf("row %d: expected index %d, got %d", i, i+1, rows[i].Index)
		}
		if got := cell(t, rows[i], ""); got != want {
			t.Errorf("row %d: expected %s, got %s", i, want, got)
		}
	}
}

func TestExpand_EmptyRootArrayYieldsNoRows(t *testing.T) {
	rows := expandFor(t, `[]`, []string{""})
	if len(rows) != 0 {
		t.Fatalf("expected 0 rows, got %d", len(rows))
	}
}

func TestExpand_PrimitiveArrayStaysOneRow(t *testing.T) {
	// A selected primitive array never pivots; the single row holds the
	// whole array as one value.
	rows := expandFor(t, `{"profile":{"skills":["go","sql"]}}`, []string{"profile.skills"})

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Index != 0 {
		t.Errorf("expected no index, got %d", rows[0].Index)
	}
	if got := cell(t, rows[0], "profile.skills"); got != `["go","sql"]` {
		t.Errorf("expected the serialized array, got %s", got)
	}
}

func TestExpand_SingleRowAllAbsent(t *testing.T) {
	rows := expandFor(t, `{"a":1}`, []string{"missing", "also.missing"})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if len(rows[0].Values) != 0 {
		t.Errorf("expected no resolved values, got %v", rows[0].Values)
	}
}

func TestExpand_Idempotent(t *testing.T) {
	input := `{"groups":[{"name":"G1","items":[{"v":1},{"v":2}]}]}`
	paths := []string{"groups.name", "groups.items.v"}

	first := expandFor(t, input, paths)
	second := expandFor(t, input, paths)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("two expansions of the same input differ (-first +second):\n%s", diff)
	}
}

func TestExpand_RowContentIndependentOfSelectionOrder(t *testing.T) {
	input := `{"a":"outer","users":[{"id":1,"name":"x"}]}`

	forward := expandFor(t, input, []string{"a", "users.id", "users.name"})
	reversed := expandFor(t, input, []string{"users.name", "users.id", "a"})

	if diff := cmp.Diff(forward, reversed); diff != "" {
		t.Errorf("row content depends on selection order (-forward +reversed):\n%s", diff)
	}
}
