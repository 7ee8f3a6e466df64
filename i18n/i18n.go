// Package i18n provides the fr/en message catalog of the UI.
package i18n

import "strings"

// DefaultLang is used when no supported language is requested.
const DefaultLang = "fr"

var catalog = map[string]map[string]string{
	"fr": {
		"required":                  "Requis",
		"app.title":                 "Suivi des installations",
		"nav.list":                  "Matériels",
		"nav.back":                  "Retour à la liste",
		"suivi.title":               "Liste des Matériels",
		"suivi.search_placeholder":  "Rechercher par marque, modèle, numéro de série ou type",
		"suivi.search":              "Rechercher",
		"suivi.empty":               "Aucun matériel trouvé.",
		"suivi.load_error":          "Erreur lors du chargement des matériels",
		"suivi.count":               "matériel(s)",
		"export.xlsx":               "Exporter (Excel)",
		"export.sheet":              "Matériels",
		"materiel.brand":            "Marque",
		"materiel.model":            "Modèle",
		"materiel.type":             "Type",
		"materiel.serial":           "Numéro de série",
		"materiel.installed_on":     "Installé le",
		"materiel.not_found":        "Matériel introuvable",
		"installation.title":        "Installation",
		"installation.name":         "Nom",
		"installation.client":       "Client",
		"installation.boutique":     "Boutique",
		"installation.organisation": "Organisation",
		"installation.invoice":      "Numéro de facture",
		"installation.invoice_date": "Date de facture",
		"installation.status":       "Statut",
	},
	"en": {
		"required":                  "Required",
		"app.title":                 "Installation tracking",
		"nav.list":                  "Equipment",
		"nav.back":                  "Back to list",
		"suivi.title":               "Equipment list",
		"suivi.search_placeholder":  "Search by brand, model, serial number or type",
		"suivi.search":              "Search",
		"suivi.empty":               "No equipment found.",
		"suivi.load_error":          "Failed to load equipment",
		"suivi.count":               "item(s)",
		"export.xlsx":               "Export (Excel)",
		"export.sheet":              "Equipment",
		"materiel.brand":            "Brand",
		"materiel.model":            "Model",
		"materiel.type":             "Type",
		"materiel.serial":           "Serial number",
		"materiel.installed_on":     "Installed on",
		"materiel.not_found":        "Equipment not found",
		"installation.title":        "Installation",
		"installation.name":         "Name",
		"installation.client":       "Client",
		"installation.boutique":     "Shop",
		"installation.organisation": "Organisation",
		"installation.invoice":      "Invoice number",
		"installation.invoice_date": "Invoice date",
		"installation.status":       "Status",
	},
}

// Supported reports whether lang has a catalog.
func Supported(lang string) bool {
	_, ok := catalog[lang]
	return ok
}

// T translates code into lang, falling back to French then to the code itself.
func T(lang, code string) string {
	if msgs, ok := catalog[lang]; ok {
		if msg, ok := msgs[code]; ok {
			return msg
		}
	}
	if msg, ok := catalog[DefaultLang][code]; ok {
		return msg
	}
	return code
}

// DetectLanguage picks "en" when the first Accept-Language tag is English, else French.
func DetectLanguage(acceptLanguage string) string {
	first := strings.TrimSpace(strings.SplitN(acceptLanguage, ",", 2)[0])
	first = strings.SplitN(first, ";", 2)[0]
	tag := strings.ToLower(strings.SplitN(first, "-", 2)[0])
	if tag == "en" {
		return "en"
	}
	return DefaultLang
}
