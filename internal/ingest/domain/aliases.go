package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// Concept nom canonique d'une colonne requise
type Concept string

const (
	ArrivalDate   Concept = "Arrival Date"
	DepartureDate Concept = "Departure Date"
	DailyRate     Concept = "Daily Rate"
	RoomType      Concept = "Room Type"
	GuestCount    Concept = "No Of Guests"
	Room          Concept = "Room"
)

// Concepts liste les concepts requis dans l'ordre de rapport des erreurs
func Concepts() []Concept {
	return []Concept{ArrivalDate, DepartureDate, DailyRate, RoomType, GuestCount, Room}
}

// ParseConcept retrouve un concept à partir de son nom (insensible à la casse)
func ParseConcept(name string) (Concept, error) {
	n := NormalizeHeader(name)
	for _, c := range Concepts() {
		if string(c) == n {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown column concept %q", name)
}

// AliasSet synonymes acceptés par concept, par ordre de priorité
type AliasSet struct {
	synonyms map[Concept][]string
}

// DefaultAliases retourne les synonymes reconnus par défaut (anglais et portugais)
func DefaultAliases() *AliasSet {
	return &AliasSet{
		synonyms: map[Concept][]string{
			ArrivalDate:   {"Arrival Date", "Arrival", "Check-In", "Data De Chegada", "Checkin"},
			DepartureDate: {"Departure Date", "Departure", "Check-Out", "Data De Saída", "Checkout"},
			DailyRate:     {"Daily Rate", "Adr", "Tarifa Diária", "Rate", "Price"},
			RoomType:      {"Room Type", "Type", "Tipo De Quarto", "Category"},
			GuestCount:    {"No Of Guests", "Guests", "Hóspedes", "Pax"},
			Room:          {"Room", "Room Number", "Quarto", "Número Do Quarto"},
		},
	}
}

// Synonyms retourne une copie des synonymes d'un concept
func (a *AliasSet) Synonyms(c Concept) []string {
	return append([]string(nil), a.synonyms[c]...)
}

// Extend ajoute des synonymes en fin de liste (priorité la plus basse).
// Les doublons après normalisation sont ignorés.
func (a *AliasSet) Extend(c Concept, synonyms ...string) {
	seen := make(map[string]bool, len(a.synonyms[c]))
	for _, s := range a.synonyms[c] {
		seen[NormalizeHeader(s)] = true
	}
	for _, s := range synonyms {
		n := NormalizeHeader(s)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		a.synonyms[c] = append(a.synonyms[c], s)
	}
}

// NormalizeHeader supprime les espaces autour et met chaque mot en casse titre:
// une lettre est en majuscule si elle suit un caractère qui n'est pas une lettre.
func NormalizeHeader(h string) string {
	h = strings.TrimSpace(h)

	var b strings.Builder
	b.Grow(len(h))
	prevLetter := false
	for _, r := range h {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
