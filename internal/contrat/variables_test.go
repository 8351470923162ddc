package contrat

import (
	"strings"
	"testing"

	"github.com/troismondes/gigdex/internal/domain/document"
)

func TestVariables_Defaults(t *testing.T) {
	vars := Variables(Input{})

	if vars["contact_nom"] != NonSpecifie {
		t.Errorf("contact_nom = %q", vars["contact_nom"])
	}
	if vars["concert_date"] != NonSpecifiee {
		t.Errorf("concert_date = %q", vars["concert_date"])
	}
	if vars["contact_prenom"] != "" {
		t.Errorf("contact_prenom defaults to empty, got %q", vars["contact_prenom"])
	}
}

func TestVariables_StructureOverridesContact(t *testing.T) {
	vars := Variables(Input{
		Contact:   document.New("c1", map[string]any{"structureRaisonSociale": "Ancienne"}),
		Structure: document.New("s1", map[string]any{"nom": "Nouvelle", "siret": "123"}),
	})

	if vars["contact_structure"] != "Nouvelle" {
		t.Errorf("contact_structure = %q", vars["contact_structure"])
	}
	if vars["contact_siret"] != "123" {
		t.Errorf("contact_siret = %q", vars["contact_siret"])
	}
}

func TestVariables_ConcertAmountAndDate(t *testing.T) {
	vars := Variables(Input{
		Date: document.New("d1", map[string]any{
			"titre":   "Release party",
			"date":    "2026-07-14T20:00:00Z",
			"montant": float64(1500.5),
		}),
	})

	if vars["concert_date"] != "14/07/2026" {
		t.Errorf("concert_date = %q", vars["concert_date"])
	}
	if vars["concert_montant_lettres"] != "Mille cinq cents euros et cinquante centimes" {
		t.Errorf("concert_montant_lettres = %q", vars["concert_montant_lettres"])
	}
	if !strings.HasSuffix(vars["concert_montant"], "€") {
		t.Errorf("concert_montant = %q", vars["concert_montant"])
	}
	if !strings.Contains(vars["concert_montant"], ",50") {
		t.Errorf("French decimals expected, got %q", vars["concert_montant"])
	}
}

func TestVariables_EpochDate(t *testing.T) {
	// 2026-07-14 00:00:00 UTC
	vars := Variables(Input{
		Date: document.New("d1", map[string]any{"date": float64(1783987200)}),
	})
	if vars["concert_date"] != "14/07/2026" {
		t.Errorf("concert_date = %q", vars["concert_date"])
	}
}

func TestRemplacer(t *testing.T) {
	vars := map[string]string{
		"artiste_nom": "Fishbach",
		"lieu_ville":  "Rennes",
	}
	got := Remplacer("Le concert de {artiste_nom} à {lieu_ville} ({inconnu})", vars)
	want := "Le concert de Fishbach à Rennes ({inconnu})"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRemplacer_RepeatedVariable(t *testing.T) {
	got := Remplacer("{x} et {x}", map[string]string{"x": "a"})
	if got != "a et a" {
		t.Errorf("got %q", got)
	}
}
