package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sangkips/quotify-api/internal/domain/entity"
	"github.com/sangkips/quotify-api/internal/domain/enum"
	domainRepo "github.com/sangkips/quotify-api/internal/domain/repository"
	"github.com/sangkips/quotify-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.Quotation{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	user := &entity.User{Name: "Owner", Email: email, Password: "hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newQuotation(ownerID uuid.UUID, number, company, customer string) *entity.Quotation {
	return &entity.Quotation{
		UserID:          ownerID,
		QuotationNumber: number,
		QuotationDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		CompanyDetails:  entity.CompanyDetails{Name: company},
		CustomerDetails: entity.CustomerDetails{Name: customer},
		Items: datatypes.JSONSlice[entity.LineItem]{
			{Description: "Widget", Quantity: 2, Rate: 50, Amount: 100},
		},
		SubTotal:   100,
		GrandTotal: 100,
	}
}

func TestQuotationRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	ctx := context.Background()
	owner := createUser(t, db, "owner@example.com")

	q := newQuotation(owner.ID, "QT-20240301-1234", "Acme", "Globex")
	q.Tax = &entity.Tax{Label: "VAT", Percentage: 16, Amount: 16}
	require.NoError(t, repo.Create(ctx, q))
	assert.NotEqual(t, uuid.Nil, q.ID)
	assert.Equal(t, enum.QuotationStatusDraft, q.Status)

	found, err := repo.FindByID(ctx, q.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "QT-20240301-1234", found.QuotationNumber)
	assert.Equal(t, "Acme", found.CompanyDetails.Name)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Widget", found.Items[0].Description)
	require.NotNil(t, found.Tax)
	assert.Equal(t, 16.0, found.Tax.Percentage)
	assert.Nil(t, found.Discount)
}

func TestQuotationRepository_OwnerScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	q := newQuotation(alice.ID, "QT-20240301-1000", "Acme", "Globex")
	require.NoError(t, repo.Create(ctx, q))

	_, err := repo.FindByID(ctx, q.ID, bob.ID)
	assert.ErrorIs(t, err, domainRepo.ErrNotFound)

	_, err = repo.Update(ctx, q.ID, bob.ID, &entity.QuotationPatch{Notes: ptr("hijack")})
	assert.ErrorIs(t, err, domainRepo.ErrNotFound)

	_, err = repo.Finalize(ctx, q.ID, bob.ID)
	assert.ErrorIs(t, err, domainRepo.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, q.ID, bob.ID), domainRepo.ErrNotFound)

	items, total, err := repo.List(ctx, bob.ID, &domainRepo.QuotationFilterParams{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)

	// Alice still sees her untouched quotation.
	found, err := repo.FindByID(ctx, q.ID, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Notes)
	assert.Equal(t, enum.QuotationStatusDraft, found.Status)
}

func TestQuotationRepository_DuplicateNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	ctx := context.Background()
	owner := createUser(t, db, "owner@example.com")

	require.NoError(t, repo.Create(ctx, newQuotation(owner.ID, "QT-20240301-5555", "Acme", "Globex")))

	err := repo.Create(ctx, newQuotation(owner.ID, "QT-20240301-5555", "Acme", "Initech"))
	assert.ErrorIs(t, err, domainRepo.ErrDuplicateKey)
}

func TestQuotationRepository_ListPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	ctx := context.Background()
	owner := createUser(t, db, "owner@example.com")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		q := newQuotation(owner.ID, fmt.Sprintf("QT-20240301-%d", 1000+i), "Acme", "Globex")
		q.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, q))
	}

	seen := map[string]bool{}
	for page := 1; page <= 3; page++ {
		items, total, err := repo.List(ctx, owner.ID, &domainRepo.QuotationFilterParams{
			Pagination: &pagination.Params{Page: page, Limit: 5},
		})
		require.NoError(t, err)
		assert.EqualValues(t, 12, total)

		want := 5
		if page == 3 {
			want = 2
		}
		require.Len(t, items, want)
		for _, item := range items {
			seen[item.QuotationNumber] = true
		}
	}
	assert.Len(t, seen, 12)

	// newest first
	items, _, err := repo.List(ctx, owner.ID, &domainRepo.QuotationFilterParams{
		Pagination: &pagination.Params{Page: 1, Limit: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, "QT-20240301-1011", items[0].QuotationNumber)
	assert.Equal(t, "QT-20240301-1007", items[4].QuotationNumber)
}

func TestQuotationRepository_ListSearchAndStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	ctx := context.Background()
	owner := createUser(t, db, "owner@example.com")

	acme := newQuotation(owner.ID, "QT-20240301-1001", "Acme Corp", "Globex")
	initech := newQuotation(owner.ID, "QT-20240301-1002", "Umbrella", "Initech Ltd")
	require.NoError(t, repo.Create(ctx, acme))
	require.NoError(t, repo.Create(ctx, initech))
	_, err := repo.Finalize(ctx, initech.ID, owner.ID)
	require.NoError(t, err)

	tests := []struct {
		name   string
		params domainRepo.QuotationFilterParams
		want   []string
	}{
		{"company name, case-insensitive", domainRepo.QuotationFilterParams{Search: "aCmE"}, []string{"QT-20240301-1001"}},
		{"customer name", domainRepo.QuotationFilterParams{Search: "initech"}, []string{"QT-20240301-1002"}},
		{"quotation number", domainRepo.QuotationFilterParams{Search: "1001"}, []string{"QT-20240301-1001"}},
		{"no match", domainRepo.QuotationFilterParams{Search: "nothing-like-this"}, nil},
		{"status filter", domainRepo.QuotationFilterParams{Status: statusPtr(enum.QuotationStatusFinal)}, []string{"QT-20240301-1002"}},
		{"search and status", domainRepo.QuotationFilterParams{Search: "acme", Status: statusPtr(enum.QuotationStatusFinal)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.params
			items, total, err := repo.List(ctx, owner.ID, &params)
			require.NoError(t, err)
			assert.EqualValues(t, len(tt.want), total)

			var numbers []string
			for _, item := range items {
				numbers = append(numbers, item.QuotationNumber)
			}
			assert.Equal(t, tt.want, numbers)
		})
	}
}

func TestQuotationRepository_SearchWildcardsAreLiteral(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	ctx := context.Background()
	owner := createUser(t, db, "owner@example.com")

	require.NoError(t, repo.Create(ctx, newQuotation(owner.ID, "QT-20240301-1001", "Acme", "Globex")))
	require.NoError(t, repo.Create(ctx, newQuotation(owner.ID, "QT-20240301-1002", "Initech", "Hooli")))
	require.NoError(t, repo.Create(ctx, newQuotation(owner.ID, "QT-20240301-1003", "50% Off_Shop", `C:\Trading`)))

	tests := []struct {
		search string
		want   []string
	}{
		{"%", []string{"QT-20240301-1003"}},
		{"_", []string{"QT-20240301-1003"}},
		{"A_me", nil},
		{"Ac%e", nil},
		{"0% off_s", []string{"QT-20240301-1003"}},
		{`c:\t`, []string{"QT-20240301-1003"}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			items, total, err := repo.List(ctx, owner.ID, &domainRepo.QuotationFilterParams{Search: tt.search})
			require.NoError(t, err)
			assert.EqualValues(t, len(tt.want), total)

			var numbers []string
			for _, item := range items {
				numbers = append(numbers, item.QuotationNumber)
			}
			assert.Equal(t, tt.want, numbers)
		})
	}
}

func TestQuotationRepository_UpdateDraft(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	ctx := context.Background()
	owner := createUser(t, db, "owner@example.com")

	q := newQuotation(owner.ID, "QT-20240301-2000", "Acme", "Globex")
	require.NoError(t, repo.Create(ctx, q))

	updated, err := repo.Update(ctx, q.ID, owner.ID, &entity.QuotationPatch{
		CustomerDetails: &entity.CustomerDetails{Name: "Initech"},
		Items:           []entity.LineItem{{Description: "Gadget", Quantity: 1, Rate: 80, Amount: 80}},
		SubTotal:        ptr(80.0),
		GrandTotal:      ptr(80.0),
	})
	require.NoError(t, err)
	assert.Equal(t, "Initech", updated.CustomerDetails.Name)

	found, err := repo.FindByID(ctx, q.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Initech", found.CustomerDetails.Name)
	assert.Equal(t, "Acme", found.CompanyDetails.Name)
	assert.Equal(t, "QT-20240301-2000", found.QuotationNumber)
	assert.Equal(t, 80.0, found.GrandTotal)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Gadget", found.Items[0].Description)
	assert.Equal(t, enum.QuotationStatusDraft, found.Status)
}

func TestQuotationRepository_FinalIsImmutable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	ctx := context.Background()
	owner := createUser(t, db, "owner@example.com")

	q := newQuotation(owner.ID, "QT-20240301-3000", "Acme", "Globex")
	require.NoError(t, repo.Create(ctx, q))

	final, err := repo.Finalize(ctx, q.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.QuotationStatusFinal, final.Status)

	_, err = repo.Update(ctx, q.ID, owner.ID, &entity.QuotationPatch{Notes: ptr("late change")})
	assert.ErrorIs(t, err, domainRepo.ErrImmutable)

	assert.ErrorIs(t, repo.Delete(ctx, q.ID, owner.ID), domainRepo.ErrImmutable)

	found, err := repo.FindByID(ctx, q.ID, owner.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Notes)
}

func TestQuotationRepository_FinalizeIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	ctx := context.Background()
	owner := createUser(t, db, "owner@example.com")

	q := newQuotation(owner.ID, "QT-20240301-4000", "Acme", "Globex")
	require.NoError(t, repo.Create(ctx, q))

	first, err := repo.Finalize(ctx, q.ID, owner.ID)
	require.NoError(t, err)

	second, err := repo.Finalize(ctx, q.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.QuotationStatusFinal, second.Status)
	assert.True(t, first.UpdatedAt.Equal(second.UpdatedAt))
}

func TestQuotationRepository_DeleteDraft(t *testing.T) {
	db := setupTestDB(t)
	repo := NewQuotationRepository(db)
	ctx := context.Background()
	owner := createUser(t, db, "owner@example.com")

	q := newQuotation(owner.ID, "QT-20240301-6000", "Acme", "Globex")
	require.NoError(t, repo.Create(ctx, q))

	require.NoError(t, repo.Delete(ctx, q.ID, owner.ID))

	_, err := repo.FindByID(ctx, q.ID, owner.ID)
	assert.ErrorIs(t, err, domainRepo.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, q.ID, owner.ID), domainRepo.ErrNotFound)
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entity.User{Name: "Jane", Email: "jane@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	byEmail, err := repo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.Create(ctx, &entity.User{Name: "Copy", Email: "jane@example.com", Password: "hash"})
	assert.ErrorIs(t, err, domainRepo.ErrDuplicateKey)
}

func ptr[T any](v T) *T { return &v }

func statusPtr(s enum.QuotationStatus) *enum.QuotationStatus { return &s }
