// Package contrat renders contract templates: variable substitution over
// booking data, French date and currency formatting, and amounts in words.
package contrat

import (
	"math"
	"strings"
	"unicode"
)

var (
	unites = []string{"", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf"}
	// 70 and 90 have no word of their own: they compose with the teens of
	// the lower decade (soixante-dix, quatre-vingt-onze).
	dizaines = []string{"", "", "vingt", "trente", "quarante", "cinquante", "soixante", "soixante", "quatre-vingt", "quatre-vingt"}
	teens    = []string{"dix", "onze", "douze", "treize", "quatorze", "quinze", "seize", "dix-sept", "dix-huit", "dix-neuf"}
)

// NombreEnLettres spells a non-negative integer in French. Negative numbers
// are prefixed with "moins".
func NombreEnLettres(n int) string {
	if n == 0 {
		return "zéro"
	}
	if n < 0 {
		return "moins " + NombreEnLettres(-n)
	}

	var b strings.Builder

	if n >= 1000 {
		milliers := n / 1000
		if milliers == 1 {
			b.WriteString("mille ")
		} else {
			b.WriteString(NombreEnLettres(milliers))
			b.WriteString(" mille ")
		}
		n %= 1000
	}

	if n >= 100 {
		centaines := n / 100
		if centaines == 1 {
			b.WriteString("cent ")
		} else {
			b.WriteString(unites[centaines])
			if n%100 == 0 {
				b.WriteString(" cents ")
			} else {
				b.WriteString(" cent ")
			}
		}
		n %= 100
	}

	switch {
	case n >= 20:
		dizaine := n / 10
		unite := n % 10
		if dizaine == 7 || dizaine == 9 {
			b.WriteString(dizaines[dizaine])
			b.WriteString("-")
			b.WriteString(teens[unite])
			b.WriteString(" ")
		} else {
			b.WriteString(dizaines[dizaine])
			switch {
			case unite == 1 && dizaine != 8:
				b.WriteString(" et un ")
			case unite > 0:
				b.WriteString("-")
				b.WriteString(unites[unite])
				b.WriteString(" ")
			default:
				b.WriteString(" ")
			}
		}
	case n >= 10:
		b.WriteString(teens[n-10])
		b.WriteString(" ")
	case n > 0:
		b.WriteString(unites[n])
		b.WriteString(" ")
	}

	return strings.TrimSpace(b.String())
}

// MontantEnLettres spells a euro amount in words, capitalized, with centimes
// when the amount has a fractional part.
func MontantEnLettres(montant float64) string {
	entiere := int(math.Floor(montant))
	centimes := int(math.Round((montant - math.Floor(montant)) * 100))

	out := NombreEnLettres(entiere) + " euro"
	if entiere > 1 {
		out += "s"
	}
	if centimes > 0 {
		out += " et " + NombreEnLettres(centimes) + " centime"
		if centimes > 1 {
			out += "s"
		}
	}

	return capitalize(out)
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
