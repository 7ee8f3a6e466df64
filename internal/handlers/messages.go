package handlers

// API messages returned in the "error" / "message" fields.
const (
	msgInstallationsListFailed = "Erreur lors de la récupération des installations"
	msgInstallationInvalid     = "Données manquantes ou incorrectes"
	msgInstallationCreateFail  = "Erreur lors de la création de l'installation"
	msgInstallationNotFound    = "Installation introuvable"
	msgInstallationGetFailed   = "Erreur lors de la récupération de l'installation"

	msgMaterielsListFailed  = "Erreur lors de la récupération des matériels"
	msgMaterielMissingField = "Informations manquantes dans la requête"
	msgMaterielCreateFailed = "Erreur lors de la création du matériel"
	msgMaterielUpdateFailed = "Erreur lors de la mise à jour du matériel"
	msgMaterielDeleteFailed = "Erreur lors de la suppression du matériel"
	msgMaterielDeleted      = "Matériel supprimé avec succès"
	msgMaterielNotFound     = "Matériel introuvable"
	msgMaterielGetFailed    = "Erreur lors de la récupération du matériel"
	msgMissingID            = "ID manquant"
	msgExportFailed         = "Erreur lors de l'export des matériels"
)
