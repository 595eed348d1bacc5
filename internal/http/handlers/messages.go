package handlers

import "fmt"

// Localized user-facing messages keyed by locale. The denial message echoes
// the limit and plan so clients can show it verbatim.
var quotaDeniedMessages = map[string]string{
	"en": "%s limit reached (%d searches for %s plan)",
	"fr": "Limite %s atteinte (%d recherches pour le plan %s)",
}

var limitTypeLabels = map[string]map[string]string{
	"en": {"weekly": "Weekly", "monthly": "Monthly"},
	"fr": {"weekly": "hebdomadaire", "monthly": "mensuelle"},
}

func quotaDeniedMessage(locale, window string, limit int, plan string) string {
	format, ok := quotaDeniedMessages[locale]
	if !ok {
		format = quotaDeniedMessages["en"]
	}
	label := limitTypeLabels["en"][window]
	if labels, ok := limitTypeLabels[locale]; ok {
		if l, ok := labels[window]; ok {
			label = l
		}
	}
	return fmt.Sprintf(format, label, limit, plan)
}

var noResultsMessages = map[string]string{
	"en": "No places found. Try a different search query or location.",
	"fr": "Aucun lieu trouvé. Essayez une autre recherche ou un autre lieu.",
}

func noResultsMessage(locale string) string {
	if msg, ok := noResultsMessages[locale]; ok {
		return msg
	}
	return noResultsMessages["en"]
}
