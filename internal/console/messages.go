package console

// Fixed operator-facing texts. The console is localised in French.
const (
	PendingText     = "Envoi en cours..."
	SubmitErrorText = "Erreur de communication avec le serveur SNMP."

	LoadingText   = "Chargement..."
	EmptyText     = "Aucune trame enregistrée."
	NoMatchText   = "Aucune trame ne correspond à la recherche."
	LoadErrorText = "Erreur lors du chargement de l’historique."

	SavedText = "Configuration sauvegardée avec succès !"

	// ValuePlaceholder replaces an absent or empty valeur
	ValuePlaceholder = "-"
)
