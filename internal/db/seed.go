package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/rezagth/gestion-installations/internal/models"
	"gorm.io/gorm"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

// demoInstallations is the development data set. Installations are keyed by Nom.
func demoInstallations() []models.Installation {
	return []models.Installation{
		{
			Nom: "Magasin Rivoli", Client: "Maison Durand", Boutique: "Paris 1er", Organisation: "Durand Retail",
			NumeroFacture: null.StringFrom("FAC-2024-001"), DateFacture: null.TimeFrom(day(2024, 2, 1)),
			Materiels: []models.Materiel{
				{Marque: "Bosch", Modele: "GSR 18V", NumeroSerie: "BSH-18V-0001", TypeMateriel: "outil", DateInstallation: day(2024, 1, 15)},
				{Marque: "Epson", Modele: "TM-T88VI", NumeroSerie: "EPS-T88-4471", TypeMateriel: "imprimante", DateInstallation: day(2024, 1, 16)},
			},
		},
		{
			Nom: "Entrepôt Lyon Sud", Client: "LogiTrans", Boutique: "Lyon 7e",
			Materiels: []models.Materiel{
				{Marque: "Zebra", Modele: "ZT411", NumeroSerie: "ZBR-411-9012", TypeMateriel: "imprimante", DateInstallation: day(2024, 4, 2)},
				{Marque: "Makita", Modele: "DHP485", NumeroSerie: "MKT-485-3321", TypeMateriel: "outil", DateInstallation: day(2024, 5, 20)},
				{Marque: "Ubiquiti", Modele: "UAP-AC-Pro", NumeroSerie: "UBQ-ACP-0042", TypeMateriel: "réseau", DateInstallation: day(2023, 11, 8)},
			},
		},
	}
}

// Seed inserts the demo installations that are not present yet. It is idempotent.
func Seed(conn *gorm.DB) error {
	for _, inst := range demoInstallations() {
		var existing models.Installation
		err := conn.Where("nom = ?", inst.Nom).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("seed lookup %q: %w", inst.Nom, err)
		}
		inst.Status = models.InstallationStatusActive
		if err := conn.Create(&inst).Error; err != nil {
			return fmt.Errorf("seed create %q: %w", inst.Nom, err)
		}
	}
	return nil
}
