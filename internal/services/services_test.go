package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	dbpkg "github.com/rezagth/gestion-installations/internal/db"
	"github.com/rezagth/gestion-installations/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(dbpkg.SQLite(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Installation{}, &models.Materiel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func siteA() InstallationInput {
	return InstallationInput{
		Nom: "Site A", Client: "ACME", Boutique: "Paris",
		Materiels: []InstallationItem{
			{Marque: "Bosch", Modele: "X1", NumeroSerie: "SN1", TypeMateriel: "outil", DateInstallation: "2024-01-01"},
		},
	}
}

func TestInstallationCreate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInstallationService(db)

	in := siteA()
	in.NumeroFacture = null.StringFrom("F-42")
	in.DateFacture = "2024-02-10"
	in.Materiels = append(in.Materiels, InstallationItem{Marque: "Epson", Modele: "TM", NumeroSerie: "SN2", TypeMateriel: "imprimante", DateInstallation: "2024-03-05T08:00:00Z"})

	inst, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.NotEmpty(t, inst.ID)
	assert.Equal(t, models.InstallationStatusActive, inst.Status)
	assert.Equal(t, "", inst.Organisation)
	assert.Equal(t, "F-42", inst.NumeroFacture.String)
	require.True(t, inst.DateFacture.Valid)
	assert.True(t, inst.DateFacture.Time.Equal(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)))
	require.Len(t, inst.Materiels, 2)
	for _, m := range inst.Materiels {
		assert.Equal(t, inst.ID, m.InstallationID)
		assert.NotEmpty(t, m.ID)
	}
	// newest first
	assert.Equal(t, "SN2", inst.Materiels[0].NumeroSerie)
}

func TestInstallationCreateWithoutOptionalFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInstallationService(db)

	in := siteA()
	in.Materiels = []InstallationItem{}
	inst, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, inst.NumeroFacture.Valid)
	assert.False(t, inst.DateFacture.Valid)
	assert.NotNil(t, inst.Materiels)
	assert.Empty(t, inst.Materiels)
}

func TestInstallationCreateIsAtomic(t *testing.T) {
	tests := []struct {
		name string
		item InstallationItem
	}{
		{"malformed date", InstallationItem{Marque: "B", Modele: "M", NumeroSerie: "S", TypeMateriel: "T", DateInstallation: "hier"}},
		{"missing date", InstallationItem{Marque: "B", Modele: "M", NumeroSerie: "S", TypeMateriel: "T"}},
		{"missing marque", InstallationItem{Modele: "M", NumeroSerie: "S", TypeMateriel: "T", DateInstallation: "2024-01-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			svc := NewInstallationService(db)
			in := siteA()
			in.Materiels = append(in.Materiels, tt.item)
			_, err := svc.Create(context.Background(), in)
			require.Error(t, err)

			var instCount, matCount int64
			db.Model(&models.Installation{}).Count(&instCount)
			db.Model(&models.Materiel{}).Count(&matCount)
			assert.Zero(t, instCount)
			assert.Zero(t, matCount)
		})
	}
}

func TestInstallationCreateMalformedInvoiceDate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInstallationService(db)
	in := siteA()
	in.DateFacture = "demain"
	_, err := svc.Create(context.Background(), in)
	require.Error(t, err)
}

func TestInstallationListAndGet(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInstallationService(db)
	ctx := context.Background()

	empty, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	created, err := svc.Create(ctx, siteA())
	require.NoError(t, err)
	other := siteA()
	other.Nom = "Site B"
	other.Materiels = []InstallationItem{}
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, inst := range list {
		assert.NotNil(t, inst.Materiels, "materiels must be loaded for %s", inst.Nom)
	}

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Site A", got.Nom)
	require.Len(t, got.Materiels, 1)

	_, err = svc.Get(ctx, "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func seedMateriels(t *testing.T, db *gorm.DB) (models.Installation, []models.Materiel) {
	t.Helper()
	inst := models.Installation{Nom: "Site", Client: "C", Boutique: "B", Status: models.InstallationStatusActive}
	require.NoError(t, db.Create(&inst).Error)
	items := []models.Materiel{
		{Marque: "Bosch", Modele: "GSR 18V", NumeroSerie: "BSH-001", TypeMateriel: "outil", DateInstallation: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{Marque: "Epson", Modele: "TM-T88", NumeroSerie: "EPS-002", TypeMateriel: "imprimante", DateInstallation: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Marque: "Zebra", Modele: "ZT411", NumeroSerie: "ZBR_100%", TypeMateriel: "Imprimante", DateInstallation: time.Date(2023, 6, 20, 0, 0, 0, 0, time.UTC)},
	}
	for i := range items {
		items[i].InstallationID = inst.ID
		require.NoError(t, db.Create(&items[i]).Error)
	}
	return inst, items
}

func serials(ms []models.Materiel) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.NumeroSerie)
	}
	return out
}

func TestMaterielListSearch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaterielService(db)
	seedMateriels(t, db)

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"no term returns all newest first", "", []string{"EPS-002", "BSH-001", "ZBR_100%"}},
		{"blank term returns all", "   ", []string{"EPS-002", "BSH-001", "ZBR_100%"}},
		{"marque case insensitive", "bOsCh", []string{"BSH-001"}},
		{"modele substring", "t88", []string{"EPS-002"}},
		{"serial", "zbr", []string{"ZBR_100%"}},
		{"type across case", "IMPRIMANTE", []string{"EPS-002", "ZBR_100%"}},
		{"percent is literal", "%", []string{"ZBR_100%"}},
		{"underscore is literal", "_", []string{"ZBR_100%"}},
		{"no match", "makita", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(context.Background(), tt.search)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, serials(got))
			for _, m := range got {
				require.NotNil(t, m.Installation)
				assert.Equal(t, m.InstallationID, m.Installation.ID)
			}
		})
	}
}

func TestMaterielListSearchFoldsAccents(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaterielService(db)
	inst, _ := seedMateriels(t, db)
	m := models.Materiel{
		Marque: "Électrolux", Modele: "Àrpège", NumeroSerie: "ELX-Ç1", TypeMateriel: "ÉCRAN",
		DateInstallation: time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC), InstallationID: inst.ID,
	}
	require.NoError(t, db.Create(&m).Error)

	for _, term := range []string{"Électrolux", "électrolux", "ÉLECTROLUX", "écran", "ÉCRAN", "lux", "àrp", "elx-ç"} {
		got, err := svc.List(context.Background(), term)
		require.NoError(t, err)
		assert.Equal(t, []string{"ELX-Ç1"}, serials(got), "search %q", term)
	}
}

func validInput(installationID string) MaterielInput {
	return MaterielInput{
		Marque: "Makita", Modele: "DHP485", NumeroSerie: "MKT-1", TypeMateriel: "outil",
		DateInstallation: "2024-05-20", InstallationID: installationID,
	}
}

func TestMaterielCreate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaterielService(db)
	inst, _ := seedMateriels(t, db)

	m, err := svc.Create(context.Background(), validInput(inst.ID))
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	require.NotNil(t, m.Installation)
	assert.Equal(t, inst.ID, m.Installation.ID)
	assert.True(t, m.DateInstallation.Equal(time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)))

	// serial numbers are not unique
	_, err = svc.Create(context.Background(), validInput(inst.ID))
	require.NoError(t, err)
}

func TestMaterielCreateFailures(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaterielService(db)
	inst, _ := seedMateriels(t, db)

	_, err := svc.Create(context.Background(), validInput("unknown"))
	assert.ErrorIs(t, err, ErrInstallationNotFound)

	bad := validInput(inst.ID)
	bad.DateInstallation = "20/05/2024"
	_, err = svc.Create(context.Background(), bad)
	assert.Error(t, err)

	var count int64
	db.Model(&models.Materiel{}).Count(&count)
	assert.EqualValues(t, 3, count)
}

func TestMaterielUpdate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaterielService(db)
	inst, items := seedMateriels(t, db)
	other := models.Installation{Nom: "Other", Client: "C", Boutique: "B", Status: models.InstallationStatusActive}
	require.NoError(t, db.Create(&other).Error)

	in := validInput(other.ID)
	updated, err := svc.Update(context.Background(), MaterielUpdate{ID: items[0].ID, MaterielInput: in})
	require.NoError(t, err)
	assert.Equal(t, items[0].ID, updated.ID)
	assert.Equal(t, "Makita", updated.Marque)
	assert.Equal(t, "MKT-1", updated.NumeroSerie)
	assert.Equal(t, other.ID, updated.InstallationID)
	require.NotNil(t, updated.Installation)
	assert.Equal(t, "Other", updated.Installation.Nom)

	// the other rows are untouched
	var untouched models.Materiel
	require.NoError(t, db.Where("id = ?", items[1].ID).First(&untouched).Error)
	assert.Equal(t, "Epson", untouched.Marque)
	assert.Equal(t, inst.ID, untouched.InstallationID)
}

func TestMaterielUpdateUnknownID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaterielService(db)
	inst, _ := seedMateriels(t, db)

	var before []models.Materiel
	require.NoError(t, db.Order("id").Find(&before).Error)

	_, err := svc.Update(context.Background(), MaterielUpdate{ID: "missing", MaterielInput: validInput(inst.ID)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var after []models.Materiel
	require.NoError(t, db.Order("id").Find(&after).Error)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].Marque, after[i].Marque)
		assert.Equal(t, before[i].NumeroSerie, after[i].NumeroSerie)
	}
}

func TestMaterielDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaterielService(db)
	_, items := seedMateriels(t, db)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, items[0].ID))

	var count int64
	db.Model(&models.Materiel{}).Count(&count)
	assert.EqualValues(t, 2, count)
	_, err := svc.Get(ctx, items[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// repeated delete fails
	assert.ErrorIs(t, svc.Delete(ctx, items[0].ID), ErrNotFound)
	db.Model(&models.Materiel{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestSearchPredicate(t *testing.T) {
	where, args, err := SearchPredicate("  ")
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args, err = SearchPredicate("Bosch")
	require.NoError(t, err)
	assert.Equal(t,
		`(LOWER(marque) LIKE ? ESCAPE '\' OR LOWER(modele) LIKE ? ESCAPE '\' OR LOWER(numero_serie) LIKE ? ESCAPE '\' OR LOWER(type_materiel) LIKE ? ESCAPE '\')`,
		where)
	assert.Equal(t, []any{"%bosch%", "%bosch%", "%bosch%", "%bosch%"}, args)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%50\%%`, LikePattern("50%"))
	assert.Equal(t, `%a\_b%`, LikePattern("A_B"))
	assert.Equal(t, `%c:\\tmp%`, LikePattern(`C:\tmp`))
}

func TestInstallationCreateRollsBackOnDBFailure(t *testing.T) {
	db := setupTestDB(t)
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_materiel", func(tx *gorm.DB) {
		if m, ok := tx.Statement.Dest.(*models.Materiel); ok && m.NumeroSerie == "BOOM" {
			tx.AddError(errors.New("disk full"))
		}
	})
	require.NoError(t, err)
	svc := NewInstallationService(db)

	in := siteA()
	in.Materiels = append(in.Materiels, InstallationItem{Marque: "B", Modele: "M", NumeroSerie: "BOOM", TypeMateriel: "T", DateInstallation: "2024-01-02"})
	_, err = svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	var instCount, matCount int64
	db.Model(&models.Installation{}).Count(&instCount)
	db.Model(&models.Materiel{}).Count(&matCount)
	assert.Zero(t, instCount, "parent row must be rolled back")
	assert.Zero(t, matCount, "child rows must be rolled back")
}
