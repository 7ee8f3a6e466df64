package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rezagth/gestion-installations/internal/models"
	"gorm.io/gorm"
)

// MaterielInput holds the fields of a materiel create request. All are required.
type MaterielInput struct {
	Marque           string `json:"marque" validate:"required"`
	Modele           string `json:"modele" validate:"required"`
	NumeroSerie      string `json:"numeroSerie" validate:"required"`
	TypeMateriel     string `json:"typeMateriel" validate:"required"`
	DateInstallation string `json:"dateInstallation" validate:"required"`
	InstallationID   string `json:"installationId" validate:"required"`
}

// MaterielUpdate is a full overwrite of the materiel identified by ID.
type MaterielUpdate struct {
	ID string `json:"id" validate:"required"`
	MaterielInput
}

type MaterielService struct {
	db *gorm.DB
}

func NewMaterielService(db *gorm.DB) *MaterielService {
	return &MaterielService{db: db}
}

// List returns the materiels matching search (all of them when search is blank),
// each with its installation, newest installation date first.
func (s *MaterielService) List(ctx context.Context, search string) ([]models.Materiel, error) {
	q := s.db.WithContext(ctx).Preload("Installation")
	where, args, err := SearchPredicate(search)
	if err != nil {
		return nil, fmt.Errorf("build search: %w", err)
	}
	if where != "" {
		q = q.Where(where, args...)
	}
	materiels := []models.Materiel{}
	if err := q.Order("date_installation desc").Order("id").Find(&materiels).Error; err != nil {
		return nil, fmt.Errorf("list materiels: %w", err)
	}
	return materiels, nil
}

// Get returns one materiel with its installation.
func (s *MaterielService) Get(ctx context.Context, id string) (*models.Materiel, error) {
	var m models.Materiel
	err := s.db.WithContext(ctx).Preload("Installation").Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get materiel %s: %w", id, err)
	}
	return &m, nil
}

// Create inserts a materiel attached to an existing installation.
func (s *MaterielService) Create(ctx context.Context, in MaterielInput) (*models.Materiel, error) {
	m, err := s.build(ctx, s.db, in)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("create materiel: %w", err)
	}
	return s.Get(ctx, m.ID)
}

// Update overwrites every field of the materiel. ErrNotFound leaves all rows untouched.
func (s *MaterielService) Update(ctx context.Context, in MaterielUpdate) (*models.Materiel, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.build(ctx, tx, in.MaterielInput)
		if err != nil {
			return err
		}
		res := tx.Model(&models.Materiel{}).Where("id = ?", in.ID).Updates(map[string]any{
			"marque":            m.Marque,
			"modele":            m.Modele,
			"numero_serie":      m.NumeroSerie,
			"type_materiel":     m.TypeMateriel,
			"date_installation": m.DateInstallation,
			"installation_id":   m.InstallationID,
		})
		if res.Error != nil {
			return fmt.Errorf("update materiel %s: %w", in.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("update materiel %s: %w", in.ID, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, in.ID)
}

// Delete removes exactly the materiel identified by id.
func (s *MaterielService) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Materiel{})
	if res.Error != nil {
		return fmt.Errorf("delete materiel %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete materiel %s: %w", id, ErrNotFound)
	}
	return nil
}

// build parses the input and checks the referenced installation exists.
func (s *MaterielService) build(ctx context.Context, db *gorm.DB, in MaterielInput) (*models.Materiel, error) {
	date, err := models.ParseDate(in.DateInstallation)
	if err != nil {
		return nil, fmt.Errorf("dateInstallation: %w", err)
	}
	var count int64
	if err := db.WithContext(ctx).Model(&models.Installation{}).Where("id = ?", in.InstallationID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check installation %s: %w", in.InstallationID, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("installation %s: %w", in.InstallationID, ErrInstallationNotFound)
	}
	return &models.Materiel{
		Marque:           in.Marque,
		Modele:           in.Modele,
		NumeroSerie:      in.NumeroSerie,
		TypeMateriel:     in.TypeMateriel,
		DateInstallation: date,
		InstallationID:   in.InstallationID,
	}, nil
}
