package search

import (
	"testing"

	"github.com/troismondes/gigdex/internal/domain/criterion"
	"github.com/troismondes/gigdex/internal/domain/document"
	domsearch "github.com/troismondes/gigdex/internal/domain/search"
)

func doc(fields map[string]any) document.Document {
	return document.New("d1", fields)
}

func classify1(collection string, c criterion.Criterion) domsearch.Classified {
	return Classify(collection, []criterion.Criterion{c})[0]
}

func TestEvaluate_ContainsCaseInsensitive(t *testing.T) {
	c := classify1("structures", criterion.Contains("nom", "CHARRUES"))
	if !Evaluate(doc(map[string]any{"nom": "Les Vieilles Charrues"}), c) {
		t.Error("contains should ignore case")
	}
	if Evaluate(doc(map[string]any{"nom": "Olympia"}), c) {
		t.Error("non-matching value should fail")
	}
	if Evaluate(doc(map[string]any{}), c) {
		t.Error("absent value should fail, not error")
	}
}

func TestEvaluate_StartsEndsWith(t *testing.T) {
	d := doc(map[string]any{"email": "Marie.Dupont@label.fr"})
	if !Evaluate(d, classify1("contacts", criterion.StartsWith("email", "marie"))) {
		t.Error("starts_with should ignore case")
	}
	if !Evaluate(d, classify1("contacts", criterion.EndsWith("email", "@LABEL.FR"))) {
		t.Error("ends_with should ignore case")
	}
	if Evaluate(d, classify1("contacts", criterion.StartsWith("email", "dupont"))) {
		t.Error("prefix must anchor at the start")
	}
}

func TestEvaluate_EqualsNumericNormalization(t *testing.T) {
	c := classify1("lieux", criterion.Equals("capacite", 500))
	if !Evaluate(doc(map[string]any{"capacite": float64(500)}), c) {
		t.Error("int criterion should equal float64 document value")
	}
	if Evaluate(doc(map[string]any{"capacite": float64(501)}), c) {
		t.Error("different numbers should not be equal")
	}
}

func TestEvaluate_NotEqualsOnAbsentValue(t *testing.T) {
	c := classify1("dates", criterion.NotEquals("statut", "annule"))
	if !Evaluate(doc(map[string]any{}), c) {
		t.Error("absent value is not equal to anything")
	}
	if Evaluate(doc(map[string]any{"statut": "annule"}), c) {
		t.Error("matching value should fail not_equals")
	}
}

func TestEvaluate_BetweenOpenBound(t *testing.T) {
	c := classify1("dates", criterion.Between("montant", 1000, nil))
	if !Evaluate(doc(map[string]any{"montant": float64(2500)}), c) {
		t.Error("missing max bound should pass on that side")
	}
	if Evaluate(doc(map[string]any{"montant": float64(500)}), c) {
		t.Error("value below min should fail")
	}
	if Evaluate(doc(map[string]any{}), c) {
		t.Error("absent value should fail the range")
	}
}

func TestEvaluate_BetweenInclusiveBounds(t *testing.T) {
	c := classify1("dates", criterion.Between("montant", 1000, 5000))
	if !Evaluate(doc(map[string]any{"montant": float64(1000)}), c) {
		t.Error("min bound is inclusive")
	}
	if !Evaluate(doc(map[string]any{"montant": float64(5000)}), c) {
		t.Error("max bound is inclusive")
	}
}

func TestEvaluate_BetweenStringLexicographic(t *testing.T) {
	c := classify1("lieux", criterion.Between("ville", "A", "M"))
	if !Evaluate(doc(map[string]any{"ville": "Bordeaux"}), c) {
		t.Error("string range should compare lexicographically")
	}
	if Evaluate(doc(map[string]any{"ville": "Rennes"}), c) {
		t.Error("value above max should fail")
	}
	open := classify1("lieux", criterion.Between("ville", "P", nil))
	if !Evaluate(doc(map[string]any{"ville": "Paris"}), open) {
		t.Error("missing max bound should pass on that side for strings")
	}
}

func TestEvaluate_BetweenBothBoundsMissing(t *testing.T) {
	c := classify1("lieux", criterion.Between("ville", nil, nil))
	if !Evaluate(doc(map[string]any{"ville": "Paris"}), c) {
		t.Error("a fully open range should pass every document")
	}
	if !Evaluate(doc(map[string]any{}), c) {
		t.Error("a fully open range should pass even an absent value")
	}
}

func TestEvaluate_DateComparisonAcrossRepresentations(t *testing.T) {
	c := classify1("dates", criterion.GreaterThan("date", "2026-06-01"))
	if !Evaluate(doc(map[string]any{"date": "2026-07-14T20:00:00Z"}), c) {
		t.Error("RFC3339 document date should compare against a day string")
	}
	if !Evaluate(doc(map[string]any{"date": float64(1781733600)}), c) {
		t.Error("epoch document date should compare against a day string")
	}
	if Evaluate(doc(map[string]any{"date": "2026-01-10"}), c) {
		t.Error("earlier date should fail greater_than")
	}
}

func TestEvaluate_InList(t *testing.T) {
	c := classify1("dates", criterion.In("statut", "confirme", "option"))
	if !Evaluate(doc(map[string]any{"statut": "option"}), c) {
		t.Error("member value should match")
	}
	if Evaluate(doc(map[string]any{"statut": "annule"}), c) {
		t.Error("non-member should fail")
	}
	if Evaluate(doc(map[string]any{}), c) {
		t.Error("absent value should fail")
	}
}

func TestEvaluate_ArrayMembership(t *testing.T) {
	d := doc(map[string]any{"tags": []any{"festival", "plein air"}})
	if !Evaluate(d, classify1("structures", criterion.Equals("tags", "festival"))) {
		t.Error("equality on an array should test membership")
	}
	if !Evaluate(d, classify1("structures", criterion.Contains("tags", "AIR"))) {
		t.Error("contains on an array should test each member")
	}
}

func TestEvaluate_IsEmpty(t *testing.T) {
	c := classify1("contacts", criterion.IsEmpty("email"))
	for name, fields := range map[string]map[string]any{
		"absent":       {},
		"null":         {"email": nil},
		"empty string": {"email": ""},
		"blank string": {"email": "   "},
	} {
		if !Evaluate(doc(fields), c) {
			t.Errorf("%s should be empty", name)
		}
	}
	if Evaluate(doc(map[string]any{"email": "a@b.fr"}), c) {
		t.Error("present value should not be empty")
	}
	zero := classify1("lieux", criterion.IsEmpty("capacite"))
	if Evaluate(doc(map[string]any{"capacite": float64(0)}), zero) {
		t.Error("numeric zero is a value, not empty")
	}
}

func TestEvaluate_VirtualMatchesAnySource(t *testing.T) {
	c := classify1("structures", criterion.Contains("nom_ou_raisonSociale", "charrues"))
	if !Evaluate(doc(map[string]any{"raisonSociale": "Ass. Les Vieilles Charrues"}), c) {
		t.Error("second source should match")
	}
	if !Evaluate(doc(map[string]any{"nom": "Les Vieilles Charrues", "raisonSociale": nil}), c) {
		t.Error("null source must not block the other source")
	}
	if Evaluate(doc(map[string]any{"nom": nil, "raisonSociale": nil}), c) {
		t.Error("all-null sources should fail, not error")
	}
}

func TestFilter_Conjunction(t *testing.T) {
	docs := []document.Document{
		doc(map[string]any{"ville": "Rennes", "capacite": float64(800)}),
		document.New("d2", map[string]any{"ville": "Rennes", "capacite": float64(100)}),
		document.New("d3", map[string]any{"ville": "Paris", "capacite": float64(900)}),
	}
	got := Filter(docs, []domsearch.Classified{
		classify1("lieux", criterion.Equals("ville", "Rennes")),
		classify1("lieux", criterion.GreaterThan("capacite", 500)),
	})
	if len(got) != 1 || got[0].ID() != "d1" {
		t.Errorf("got %d docs", len(got))
	}
}
