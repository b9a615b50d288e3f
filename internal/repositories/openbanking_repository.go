package repositories

import (
	"context"
	"errors"

	"apexscore/internal/models"

	"gorm.io/gorm"
)

var ErrDocumentRequestNotFound = errors.New("document request not found")

// OpenBankingRepository persists institution policies and inter-institution
// document requests.
type OpenBankingRepository interface {
	CountPolicies(ctx context.Context) (int64, error)
	CreatePolicies(ctx context.Context, policies []models.InstitutionPolicy) error
	ListPolicies(ctx context.Context) ([]models.InstitutionPolicy, error)

	CreateDocumentRequest(ctx context.Context, req *models.DocumentRequest) error
	GetDocumentRequest(ctx context.Context, id string) (*models.DocumentRequest, error)
	ListDocumentRequests(ctx context.Context) ([]models.DocumentRequest, error)
	UpdateDocumentRequest(ctx context.Context, req *models.DocumentRequest) error
}

type openBankingRepository struct {
	db *gorm.DB
}

func NewOpenBankingRepository(db *gorm.DB) OpenBankingRepository {
	return &openBankingRepository{db: db}
}

func (r *openBankingRepository) CountPolicies(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InstitutionPolicy{}).Count(&count).Error
	return count, err
}

func (r *openBankingRepository) CreatePolicies(ctx context.Context, policies []models.InstitutionPolicy) error {
	if len(policies) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&policies).Error
}

func (r *openBankingRepository) ListPolicies(ctx context.Context) ([]models.InstitutionPolicy, error) {
	var policies []models.InstitutionPolicy
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&policies).Error
	return policies, err
}

func (r *openBankingRepository) CreateDocumentRequest(ctx context.Context, req *models.DocumentRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *openBankingRepository) GetDocumentRequest(ctx context.Context, id string) (*models.DocumentRequest, error) {
	var req models.DocumentRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *openBankingRepository) ListDocumentRequests(ctx context.Context) ([]models.DocumentRequest, error) {
	var reqs []models.DocumentRequest
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

func (r *openBankingRepository) UpdateDocumentRequest(ctx context.Context, req *models.DocumentRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}
