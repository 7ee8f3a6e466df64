package models

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InstallationStatusActive is the status given to every new installation.
const InstallationStatusActive = "ACTIVE"

// Installation is a client site where equipment has been deployed.
type Installation struct {
	ID            string      `gorm:"primaryKey;size:36" json:"id"`
	Nom           string      `gorm:"size:255;not null" json:"nom"`
	Client        string      `gorm:"size:255;not null" json:"client"`
	Boutique      string      `gorm:"size:255;not null" json:"boutique"`
	Organisation  string      `gorm:"size:255;not null" json:"organisation"`
	NumeroFacture null.String `gorm:"size:100" json:"numeroFacture"`
	DateFacture   null.Time   `json:"dateFacture"`
	Status        string      `gorm:"size:20;not null" json:"status"`
	Materiels     []Materiel  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"materiels,omitzero"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the caller did not provide one.
func (i *Installation) BeforeCreate(_ *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// HasInvoice reports whether an invoice number or date was recorded.
func (i *Installation) HasInvoice() bool {
	return i.NumeroFacture.Valid || i.DateFacture.Valid
}
