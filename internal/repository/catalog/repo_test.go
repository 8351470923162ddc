package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/troismondes/gigdex/internal/db"
)

type stubStore struct {
	existing map[string]bool
	created  []string
}

func (s *stubStore) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	s.created = append(s.created, def.Name)
	return nil
}

func (s *stubStore) IndexExists(_ context.Context, name string) (bool, error) {
	return s.existing[name], nil
}

func TestDefinition_Structures(t *testing.T) {
	def, err := Definition("structures")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.Name != "gigdex:structures:idx" {
		t.Errorf("name = %q", def.Name)
	}

	byAlias := map[string]db.IndexField{}
	for _, f := range def.Fields {
		byAlias[f.Alias] = f
	}

	if _, ok := byAlias["entrepriseId"]; !ok {
		t.Error("tenant tag missing from index")
	}
	if f, ok := byAlias["ville"]; !ok || f.Type != db.IndexFieldTag {
		t.Error("ville should be indexed as a tag")
	}
	if f, ok := byAlias["updatedAt"]; !ok || f.Type != db.IndexFieldNumeric || !f.Sortable {
		t.Error("updatedAt should be a sortable numeric")
	}
	if f, ok := byAlias["tags"]; !ok || !strings.Contains(f.Path, "[*]") {
		t.Error("array fields should index their members")
	}
	if _, ok := byAlias["nom_ou_raisonSociale"]; ok {
		t.Error("virtual fields must not be indexed")
	}
}

func TestDefinition_JoinedFieldAlias(t *testing.T) {
	def, err := Definition("dates")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, f := range def.Fields {
		if f.Path == "$.lieu.nom" {
			if f.Alias != "lieu_nom" {
				t.Errorf("alias = %q, want lieu_nom", f.Alias)
			}
			return
		}
	}
	t.Error("joined field lieu.nom not indexed")
}

func TestDefinition_UnknownCollection(t *testing.T) {
	if _, err := Definition("festivals"); err == nil {
		t.Fatal("expected error for unknown collection")
	}
}

func TestEnsureAll_SkipsExisting(t *testing.T) {
	s := &stubStore{existing: map[string]bool{
		"gigdex:structures:idx": true,
	}}

	if err := New(s).EnsureAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range s.created {
		if name == "gigdex:structures:idx" {
			t.Error("existing index should not be recreated")
		}
	}
	if len(s.created) == 0 {
		t.Error("missing indexes should be created")
	}
}
