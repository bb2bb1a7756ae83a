package util

import "testing"

func TestTableFQNRoundTrip(t *testing.T) {
	fqn := TableFQN("p1", "d1", "t1")
	if fqn != "p1.d1.t1" {
		t.Fatalf("unexpected FQN: %s", fqn)
	}

	project, dataset, table, err := SplitTableFQN(fqn)
	if err != nil {
		t.Fatalf("failed to split FQN: %v", err)
	}
	if project != "p1" || dataset != "d1" || table != "t1" {
		t.Errorf("unexpected parts: %s %s %s", project, dataset, table)
	}
}

func TestSplitTableFQNInvalid(t *testing.T) {
	for _, fqn := range []string{"", "p1", "p1.d1", "p1..t1", "p1.d1.t1.x"} {
		if _, _, _, err := SplitTableFQN(fqn); err == nil {
			t.Errorf("expected error for FQN %q", fqn)
		}
	}
}

func TestParseItemID(t *testing.T) {
	tests := []struct {
		id       string
		fqn      string
		column   string
		isColumn bool
	}{
		{"p1.d1.t1#table", "p1.d1.t1", "", false},
		{"p1.d1.t1#column#user_id", "p1.d1.t1", "user_id", true},
	}

	for _, tt := range tests {
		fqn, column, err := ParseItemID(tt.id)
		if err != nil {
			t.Fatalf("ParseItemID(%q) failed: %v", tt.id, err)
		}
		if fqn != tt.fqn || column != tt.column {
			t.Errorf("ParseItemID(%q) = %q, %q; want %q, %q", tt.id, fqn, column, tt.fqn, tt.column)
		}
		if IsColumnItemID(tt.id) != tt.isColumn {
			t.Errorf("IsColumnItemID(%q) = %v; want %v", tt.id, !tt.isColumn, tt.isColumn)
		}
	}
}

func TestParseItemIDInvalid(t *testing.T) {
	for _, id := range []string{"", "p1.d1.t1", "p1.d1.t1#column#", "not-an-fqn#table"} {
		if _, _, err := ParseItemID(id); err == nil {
			t.Errorf("expected error for item id %q", id)
		}
	}
}

func TestItemIDBuilders(t *testing.T) {
	if got := TableItemID("p1.d1.t1"); got != "p1.d1.t1#table" {
		t.Errorf("unexpected table item id: %s", got)
	}
	if got := ColumnItemID("p1.d1.t1", "email"); got != "p1.d1.t1#column#email" {
		t.Errorf("unexpected column item id: %s", got)
	}
}
