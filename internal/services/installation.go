package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/rezagth/gestion-installations/internal/models"
	"gorm.io/gorm"
)

// InstallationItem is one materiel of an installation creation payload.
// Items are not validated for presence; bad values fail the whole aggregate.
type InstallationItem struct {
	Marque           string `json:"marque"`
	Modele           string `json:"modele"`
	NumeroSerie      string `json:"numeroSerie"`
	TypeMateriel     string `json:"typeMateriel"`
	DateInstallation string `json:"dateInstallation"`
}

func (it InstallationItem) missing() []string {
	var out []string
	for _, f := range []struct{ name, value string }{
		{"marque", it.Marque},
		{"modele", it.Modele},
		{"numeroSerie", it.NumeroSerie},
		{"typeMateriel", it.TypeMateriel},
	} {
		if strings.TrimSpace(f.value) == "" {
			out = append(out, f.name)
		}
	}
	return out
}

// InstallationInput is the creation payload of an installation aggregate.
type InstallationInput struct {
	Nom           string             `json:"nom" validate:"required"`
	Client        string             `json:"client" validate:"required"`
	Boutique      string             `json:"boutique" validate:"required"`
	Organisation  string             `json:"organisation"`
	NumeroFacture null.String        `json:"numeroFacture"`
	DateFacture   string             `json:"dateFacture"`
	Materiels     []InstallationItem `json:"materiels" validate:"required"`
}

type InstallationService struct {
	db *gorm.DB
}

func NewInstallationService(db *gorm.DB) *InstallationService {
	return &InstallationService{db: db}
}

// List returns every installation with its materiels, newest first.
func (s *InstallationService) List(ctx context.Context) ([]models.Installation, error) {
	installations := []models.Installation{}
	err := s.db.WithContext(ctx).
		Preload("Materiels", func(db *gorm.DB) *gorm.DB { return db.Order("date_installation desc") }).
		Order("created_at desc").
		Find(&installations).Error
	if err != nil {
		return nil, fmt.Errorf("list installations: %w", err)
	}
	return installations, nil
}

// Get returns one installation with its materiels.
func (s *InstallationService) Get(ctx context.Context, id string) (*models.Installation, error) {
	var inst models.Installation
	err := s.db.WithContext(ctx).
		Preload("Materiels", func(db *gorm.DB) *gorm.DB { return db.Order("date_installation desc") }).
		Where("id = ?", id).
		First(&inst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get installation %s: %w", id, err)
	}
	return &inst, nil
}

// Create persists the installation and all its materiels in a single transaction
// and returns the reloaded aggregate.
func (s *InstallationService) Create(ctx context.Context, in InstallationInput) (*models.Installation, error) {
	inst := models.Installation{
		Nom:           in.Nom,
		Client:        in.Client,
		Boutique:      in.Boutique,
		Organisation:  in.Organisation,
		NumeroFacture: in.NumeroFacture,
		Status:        models.InstallationStatusActive,
	}
	if strings.TrimSpace(in.DateFacture) != "" {
		d, err := models.ParseDate(in.DateFacture)
		if err != nil {
			return nil, fmt.Errorf("dateFacture: %w", err)
		}
		inst.DateFacture = null.TimeFrom(d)
	}
	items := make([]models.Materiel, 0, len(in.Materiels))
	for i, it := range in.Materiels {
		if missing := it.missing(); len(missing) > 0 {
			return nil, fmt.Errorf("materiels[%d]: missing %s", i, strings.Join(missing, ", "))
		}
		d, err := models.ParseDate(it.DateInstallation)
		if err != nil {
			return nil, fmt.Errorf("materiels[%d].dateInstallation: %w", i, err)
		}
		items = append(items, models.Materiel{
			Marque:           it.Marque,
			Modele:           it.Modele,
			NumeroSerie:      it.NumeroSerie,
			TypeMateriel:     it.TypeMateriel,
			DateInstallation: d,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Materiels").Create(&inst).Error; err != nil {
			return fmt.Errorf("create installation: %w", err)
		}
		for i := range items {
			items[i].InstallationID = inst.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return fmt.Errorf("create materiel %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, inst.ID)
}
