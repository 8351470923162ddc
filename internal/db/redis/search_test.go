package redis

import (
	"testing"

	"github.com/troismondes/gigdex/internal/db"
)

func TestBuildQuery_Empty(t *testing.T) {
	if got := buildQuery(nil); got != "*" {
		t.Errorf("buildQuery(nil) = %q, want *", got)
	}
}

func TestBuildQuery_TagEquality(t *testing.T) {
	q := buildQuery([]db.Constraint{db.TagEq("ville", "Paris")})
	if q != "@ville:{Paris}" {
		t.Errorf("query = %q", q)
	}
}

func TestBuildQuery_TagInequality(t *testing.T) {
	q := buildQuery([]db.Constraint{db.TagNeq("statut", "annule")})
	if q != "-@statut:{annule}" {
		t.Errorf("query = %q", q)
	}
}

func TestBuildQuery_TenantPlusCriterion(t *testing.T) {
	q := buildQuery([]db.Constraint{
		db.TagEq("entrepriseId", "org1"),
		db.TagEq("ville", "Paris"),
	})
	if q != "@entrepriseId:{org1} @ville:{Paris}" {
		t.Errorf("query = %q", q)
	}
}

func TestBuildQuery_Ranges(t *testing.T) {
	tests := []struct {
		name string
		c    db.Constraint
		want string
	}{
		{"gt", db.Gt("capacite", 500), "@capacite:[(500 +inf]"},
		{"lt", db.Lt("capacite", 500), "@capacite:[-inf (500]"},
		{"between", db.BetweenRange("montant", 1000, 5000), "@montant:[1000 5000]"},
		{"num_eq", db.NumEq("capacite", 300), "@capacite:[300 300]"},
		{"num_neq", db.NumNeq("capacite", 300), "-@capacite:[300 300]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildQuery([]db.Constraint{tt.c}); got != tt.want {
				t.Errorf("query = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildQuery_InSet(t *testing.T) {
	q := buildQuery([]db.Constraint{db.InSet("statut", []string{"confirme", "option"})})
	if q != "@statut:{confirme|option}" {
		t.Errorf("query = %q", q)
	}
}

func TestBuildQuery_Missing(t *testing.T) {
	q := buildQuery([]db.Constraint{db.Missing("email")})
	if q != "ismissing(@email)" {
		t.Errorf("query = %q", q)
	}
}

func TestBuildQuery_EscapesTagValues(t *testing.T) {
	q := buildQuery([]db.Constraint{db.TagEq("email", "a@b.fr")})
	if q != "@email:{a\\@b\\.fr}" {
		t.Errorf("query = %q", q)
	}
}

func TestSearchQuery_ValidateBudget(t *testing.T) {
	q := &db.SearchQuery{Index: "idx", Limit: 50}
	for i := 0; i < db.MaxConstraints; i++ {
		q.Constraints = append(q.Constraints, db.TagEq("f", "v"))
	}
	if err := q.Validate(); err != nil {
		t.Fatalf("budget-sized query should validate: %v", err)
	}

	q.Constraints = append(q.Constraints, db.TagEq("f", "v"))
	if err := q.Validate(); err == nil {
		t.Fatal("expected validation error beyond the constraint budget")
	}
}
