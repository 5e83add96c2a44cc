package filter

import (
	"testing"

	"github.com/camarero/camarero/faults"
)

func newProductSet(t *testing.T) *Set {
	t.Helper()
	set, err := NewSet([]Spec{
		{Kind: KindText, Name: "name", Label: "Name"},
		{Kind: KindText, Name: "minPrice", Label: "Min price"},
		{Kind: KindSelect, Name: "status", Label: "Status", Options: []Option{
			{Label: "Pending", Value: "pending"},
			{Label: "Completed", Value: "completed"},
		}},
	})
	if err != nil {
		t.Fatalf("NewSet returned error: %v", err)
	}
	return set
}

func TestNewSetRejectsInvalidSpecs(t *testing.T) {
	t.Parallel()

	t.Run("duplicate_name", func(t *testing.T) {
		t.Parallel()
		_, err := NewSet([]Spec{
			{Kind: KindText, Name: "name"},
			{Kind: KindText, Name: "name"},
		})
		if !faults.IsCategory(err, faults.ValidationError) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("missing_name", func(t *testing.T) {
		t.Parallel()
		_, err := NewSet([]Spec{{Kind: KindText, Name: "  "}})
		if !faults.IsCategory(err, faults.ValidationError) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("bad_kind", func(t *testing.T) {
		t.Parallel()
		_, err := NewSet([]Spec{{Kind: "range", Name: "price"}})
		if !faults.IsCategory(err, faults.ValidationError) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestDraftIsIsolatedFromApplied(t *testing.T) {
	t.Parallel()

	set := newProductSet(t)
	if err := set.SetDraft("name", "burger"); err != nil {
		t.Fatalf("SetDraft returned error: %v", err)
	}

	if got := set.Applied("name"); got != "" {
		t.Fatalf("editing draft must not touch applied snapshot, got %q", got)
	}
	if got := set.EncodeQuery(); got != "" {
		t.Fatalf("query must reflect applied snapshot only, got %q", got)
	}

	if changed := set.Apply(); !changed {
		t.Fatal("expected Apply to report a change")
	}
	if got := set.Applied("name"); got != "burger" {
		t.Fatalf("unexpected applied value: %q", got)
	}
	if changed := set.Apply(); changed {
		t.Fatal("re-applying the same draft must report no change")
	}
}

func TestSetDraftUnknownName(t *testing.T) {
	t.Parallel()

	set := newProductSet(t)
	err := set.SetDraft("category", "x")
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error for unknown filter, got %v", err)
	}
}

func TestClearIsAtomic(t *testing.T) {
	t.Parallel()

	set := newProductSet(t)
	_ = set.SetDraft("name", "pizza")
	_ = set.SetDraft("minPrice", "10")
	set.Apply()

	set.Clear()

	for _, name := range []string{"name", "minPrice", "status"} {
		if set.Draft(name) != "" || set.Applied(name) != "" {
			t.Fatalf("clear left filter %q set: draft=%q applied=%q", name, set.Draft(name), set.Applied(name))
		}
	}
	if got := set.EncodeQuery(); got != "" {
		t.Fatalf("expected empty query after clear, got %q", got)
	}
}

func TestEncodeQuerySkipsUnsetAndEscapes(t *testing.T) {
	t.Parallel()

	set := newProductSet(t)
	_ = set.SetDraft("name", "milanesa napolitana")
	_ = set.SetDraft("minPrice", "")
	set.Apply()

	if got := set.EncodeQuery(); got != "name=milanesa+napolitana" {
		t.Fatalf("unexpected query: %q", got)
	}

	_ = set.SetDraft("status", "pending")
	set.Apply()
	if got := set.EncodeQuery(); got != "name=milanesa+napolitana&status=pending" {
		t.Fatalf("unexpected query: %q", got)
	}
}

func TestSelectedOptionTreatsStaleValueAsUnset(t *testing.T) {
	t.Parallel()

	set := newProductSet(t)
	_ = set.SetDraft("status", "archived")

	if _, ok := set.SelectedOption("status"); ok {
		t.Fatal("value outside the option set must render as unset")
	}

	_ = set.SetDraft("status", "pending")
	option, ok := set.SelectedOption("status")
	if !ok || option.Label != "Pending" {
		t.Fatalf("unexpected selected option: %+v ok=%v", option, ok)
	}
}
