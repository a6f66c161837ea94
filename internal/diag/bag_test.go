package diag

import (
	"testing"
)

func TestBagRespectsLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(Diagnostic{Code: WsTrailSpace, Line: 1}) {
		t.Fatal("first Add should succeed")
	}
	if !b.Add(Diagnostic{Code: WsTrailSpace, Line: 2}) {
		t.Fatal("second Add should succeed")
	}
	if b.Add(Diagnostic{Code: WsTrailSpace, Line: 3}) {
		t.Fatal("Add beyond limit should be rejected")
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", b.Len())
	}
}

func TestBagSortOrdersByLineThenSeverity(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Code: ProcRewrite, Severity: SevChange, Line: 7})
	b.Add(Diagnostic{Code: WsTabSpaceMix, Severity: SevWarning, Line: 3})
	b.Add(Diagnostic{Code: WsTabSpaceMix, Severity: SevWarning, Line: 7})
	b.Sort()

	items := b.Items()
	if items[0].Line != 3 {
		t.Fatalf("expected line 3 first, got %d", items[0].Line)
	}
	if items[1].Line != 7 || items[1].Severity != SevWarning {
		t.Fatalf("expected warning on line 7 before change trace, got %+v", items[1])
	}
	if items[2].Severity != SevChange {
		t.Fatalf("expected change trace last, got %+v", items[2])
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(Diagnostic{Line: 1})
	b := NewBag(1)
	b.Add(Diagnostic{Line: 2})
	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("expected merged bag to hold 2 items, got %d", a.Len())
	}
}

func TestSeverityVerbosityThresholds(t *testing.T) {
	if SevWarning.Verbosity() != 0 {
		t.Errorf("warnings must print at every verbosity, got %d", SevWarning.Verbosity())
	}
	if SevChange.Verbosity() != 3 {
		t.Errorf("change traces expected at -vvv, got %d", SevChange.Verbosity())
	}
	if SevTrace.Verbosity() != 4 {
		t.Errorf("decompose traces expected at -vvvv, got %d", SevTrace.Verbosity())
	}
}

func TestMultiReporterFansOut(t *testing.T) {
	b1 := NewBag(4)
	b2 := NewBag(4)
	m := MultiReporter{BagReporter{Bag: b1}, nil, BagReporter{Bag: b2}}
	m.Report(WsTrailSpace, SevWarning, 5, false, "trailing space")
	if b1.Len() != 1 || b2.Len() != 1 {
		t.Fatalf("expected both bags to receive the diagnostic, got %d and %d", b1.Len(), b2.Len())
	}
}
