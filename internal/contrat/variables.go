package contrat

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/troismondes/gigdex/internal/domain/document"
)

// Placeholder values keep generated documents readable when a field is
// missing from the source records.
const (
	NonSpecifie  = "Non spécifié"
	NonSpecifiee = "Non spécifiée"
)

var (
	varPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)
	frPrinter  = message.NewPrinter(language.French)
)

// Input carries the records a contract draws its variables from. Any of them
// may be the zero Document.
type Input struct {
	Entreprise document.Document
	Contact    document.Document
	Structure  document.Document
	Artiste    document.Document
	Date       document.Document
	Lieu       document.Document
}

// Variables builds the substitution map for one contract.
func Variables(in Input) map[string]string {
	vars := map[string]string{
		"nom_entreprise":          stringOr(in.Entreprise, "nom", NonSpecifie),
		"adresse_entreprise":      stringOr(in.Entreprise, "adresse", NonSpecifiee),
		"siret_entreprise":        stringOr(in.Entreprise, "siret", NonSpecifie),
		"telephone_entreprise":    stringOr(in.Entreprise, "telephone", NonSpecifie),
		"email_entreprise":        stringOr(in.Entreprise, "email", NonSpecifie),
		"representant_entreprise": stringOr(in.Entreprise, "representant", NonSpecifie),

		"contact_nom":       stringOr(in.Contact, "nom", NonSpecifie),
		"contact_prenom":    stringOr(in.Contact, "prenom", ""),
		"contact_email":     stringOr(in.Contact, "email", NonSpecifie),
		"contact_telephone": stringOr(in.Contact, "telephone", NonSpecifie),
		"contact_structure": firstString(NonSpecifiee,
			value(in.Structure, "nom"), value(in.Structure, "raisonSociale"),
			value(in.Contact, "structureRaisonSociale")),
		"contact_siret": firstString(NonSpecifie,
			value(in.Structure, "siret"), value(in.Contact, "siret")),

		"structure_nom": firstString(NonSpecifiee,
			value(in.Structure, "nom"), value(in.Structure, "raisonSociale")),
		"structure_siret":       stringOr(in.Structure, "siret", NonSpecifie),
		"structure_adresse":     stringOr(in.Structure, "adresse", NonSpecifiee),
		"structure_code_postal": stringOr(in.Structure, "codePostal", NonSpecifie),
		"structure_ville":       stringOr(in.Structure, "ville", NonSpecifiee),

		"artiste_nom":     stringOr(in.Artiste, "nom", NonSpecifie),
		"artiste_genre":   stringOr(in.Artiste, "genre", NonSpecifie),
		"artiste_contact": stringOr(in.Artiste, "contact", NonSpecifie),

		"concert_titre": stringOr(in.Date, "titre", NonSpecifie),
		"concert_date":  dateVar(in.Date, "date"),
		"concert_heure": stringOr(in.Date, "heure", NonSpecifiee),

		"lieu_nom":         stringOr(in.Lieu, "nom", NonSpecifie),
		"lieu_adresse":     stringOr(in.Lieu, "adresse", NonSpecifiee),
		"lieu_code_postal": stringOr(in.Lieu, "codePostal", NonSpecifie),
		"lieu_ville":       stringOr(in.Lieu, "ville", NonSpecifiee),
		"lieu_capacite":    stringOr(in.Lieu, "capacite", NonSpecifiee),
	}

	if montant, ok := floatValue(in.Date, "montant"); ok {
		vars["concert_montant"] = FormatMontant(montant)
		vars["concert_montant_lettres"] = MontantEnLettres(montant)
	} else {
		vars["concert_montant"] = NonSpecifie
		vars["concert_montant_lettres"] = NonSpecifie
	}

	return vars
}

// Remplacer substitutes every known {variable} in the template. Unknown
// placeholders are left as-is so template mistakes stay visible.
func Remplacer(template string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		if v, ok := vars[name]; ok {
			return v
		}
		return match
	})
}

// FormatMontant renders a euro amount the French way (grouped thousands,
// comma decimals).
func FormatMontant(montant float64) string {
	return frPrinter.Sprintf("%.2f €", montant)
}

// FormatDate renders a date in the French day/month/year order. Epoch
// seconds, RFC3339 strings, and plain day strings are accepted.
func FormatDate(v any) (string, bool) {
	switch val := v.(type) {
	case float64:
		return time.Unix(int64(val), 0).UTC().Format("02/01/2006"), true
	case int64:
		return time.Unix(val, 0).UTC().Format("02/01/2006"), true
	case string:
		if ts, err := time.Parse(time.RFC3339, val); err == nil {
			return ts.Format("02/01/2006"), true
		}
		if ts, err := time.Parse("2006-01-02", val); err == nil {
			return ts.Format("02/01/2006"), true
		}
		return "", false
	default:
		return "", false
	}
}

func dateVar(doc document.Document, field string) string {
	v, ok := doc.PathValue(field)
	if !ok || v == nil {
		return NonSpecifiee
	}
	if s, ok := FormatDate(v); ok {
		return s
	}
	return NonSpecifiee
}

func value(doc document.Document, field string) any {
	v, _ := doc.PathValue(field)
	return v
}

func stringOr(doc document.Document, field, fallback string) string {
	return firstString(fallback, value(doc, field))
}

func firstString(fallback string, candidates ...any) string {
	for _, c := range candidates {
		switch v := c.(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int64:
			return strconv.FormatInt(v, 10)
		case bool:
			return fmt.Sprintf("%t", v)
		}
	}
	return fallback
}

func floatValue(doc document.Document, field string) (float64, bool) {
	v, ok := doc.PathValue(field)
	if !ok {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
