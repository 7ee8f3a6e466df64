// Package suivi derives the equipment listing shown in the UI: filter, newest-first sort
// and card view models. Everything here is pure over the fetched materiels.
package suivi

import (
	"slices"
	"strings"

	"github.com/rezagth/gestion-installations/internal/models"
)

const (
	IconTools = "tools"
	IconBox   = "box"
)

// Card is the view model of one listing entry.
type Card struct {
	ID          string
	Title       string
	Type        string
	NumeroSerie string
	InstalledOn string
	Icon        string
	Href        string
}

// Matches reports whether term is a case-insensitive substring of the materiel's
// marque, modele, numeroSerie or typeMateriel. A blank term matches everything.
func Matches(m models.Materiel, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range []string{m.Marque, m.Modele, m.NumeroSerie, m.TypeMateriel} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Filter returns the materiels matching term, in input order.
func Filter(items []models.Materiel, term string) []models.Materiel {
	out := make([]models.Materiel, 0, len(items))
	for _, m := range items {
		if Matches(m, term) {
			out = append(out, m)
		}
	}
	return out
}

// SortNewestFirst returns a copy of items ordered by install date, newest first.
// Equal dates keep their relative order.
func SortNewestFirst(items []models.Materiel) []models.Materiel {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b models.Materiel) int {
		return b.DateInstallation.Compare(a.DateInstallation)
	})
	return out
}

// Icon picks the card icon from the equipment type.
func Icon(m models.Materiel) string {
	if m.IsOutil() {
		return IconTools
	}
	return IconBox
}

// Cards filters then sorts items and maps them to cards.
func Cards(items []models.Materiel, term string) []Card {
	sorted := SortNewestFirst(Filter(items, term))
	cards := make([]Card, 0, len(sorted))
	for _, m := range sorted {
		cards = append(cards, Card{
			ID:          m.ID,
			Title:       m.Title(),
			Type:        m.TypeMateriel,
			NumeroSerie: m.NumeroSerie,
			InstalledOn: models.FormatDate(m.DateInstallation),
			Icon:        Icon(m),
			Href:        "/materiels/" + m.ID,
		})
	}
	return cards
}
