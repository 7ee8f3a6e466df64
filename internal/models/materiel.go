package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TypeOutil is the equipment type rendered with the tools icon.
const TypeOutil = "outil"

// Materiel is one piece of equipment installed at an Installation.
// NumeroSerie is indexed for search but not unique.
type Materiel struct {
	ID               string        `gorm:"primaryKey;size:36" json:"id"`
	Marque           string        `gorm:"size:255;not null" json:"marque"`
	Modele           string        `gorm:"size:255;not null" json:"modele"`
	NumeroSerie      string        `gorm:"size:255;not null;index" json:"numeroSerie"`
	TypeMateriel     string        `gorm:"size:100;not null" json:"typeMateriel"`
	DateInstallation time.Time     `gorm:"not null;index" json:"dateInstallation"`
	InstallationID   string        `gorm:"size:36;not null;index" json:"installationId"`
	Installation     *Installation `json:"installation,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the caller did not provide one.
func (m *Materiel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Title is the display name of the equipment ("marque modele").
func (m *Materiel) Title() string {
	switch {
	case m.Marque == "":
		return m.Modele
	case m.Modele == "":
		return m.Marque
	}
	return m.Marque + " " + m.Modele
}

// IsOutil reports whether the equipment is a tool.
func (m *Materiel) IsOutil() bool { return m.TypeMateriel == TypeOutil }
