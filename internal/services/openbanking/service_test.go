package openbanking

import (
	"context"
	"testing"

	"apexscore/internal/models"
	"apexscore/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubOpenBankingRepo struct {
	policies []models.InstitutionPolicy
	requests map[string]*models.DocumentRequest
}

func newStubRepo() *stubOpenBankingRepo {
	return &stubOpenBankingRepo{requests: map[string]*models.DocumentRequest{}}
}

func (r *stubOpenBankingRepo) CountPolicies(_ context.Context) (int64, error) {
	return int64(len(r.policies)), nil
}

func (r *stubOpenBankingRepo) CreatePolicies(_ context.Context, policies []models.InstitutionPolicy) error {
	r.policies = append(r.policies, policies...)
	return nil
}

func (r *stubOpenBankingRepo) ListPolicies(_ context.Context) ([]models.InstitutionPolicy, error) {
	return r.policies, nil
}

func (r *stubOpenBankingRepo) CreateDocumentRequest(_ context.Context, req *models.DocumentRequest) error {
	r.requests[req.ID] = req
	return nil
}

func (r *stubOpenBankingRepo) GetDocumentRequest(_ context.Context, id string) (*models.DocumentRequest, error) {
	if req, ok := r.requests[id]; ok {
		return req, nil
	}
	return nil, repositories.ErrDocumentRequestNotFound
}

func (r *stubOpenBankingRepo) ListDocumentRequests(_ context.Context) ([]models.DocumentRequest, error) {
	var out []models.DocumentRequest
	for _, req := range r.requests {
		out = append(out, *req)
	}
	return out, nil
}

func (r *stubOpenBankingRepo) UpdateDocumentRequest(_ context.Context, req *models.DocumentRequest) error {
	r.requests[req.ID] = req
	return nil
}

func TestEnsureDefaultPolicies(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, zap.NewNop())

	require.NoError(t, svc.EnsureDefaultPolicies(context.Background()))
	first := len(repo.policies)
	assert.Equal(t, 4, first)

	// Seeding is idempotent.
	require.NoError(t, svc.EnsureDefaultPolicies(context.Background()))
	assert.Equal(t, first, len(repo.policies))
}

func TestCreateDocumentRequest(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, zap.NewNop())

	req, err := svc.CreateDocumentRequest(context.Background(), &CreateDocumentRequestInput{
		RequestType:          "bank_statement",
		RecipientInstitution: "First Continental Bank",
		ApplicantEmail:       "jane.doe@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, models.RequestStatusPending, req.Status)
	assert.Equal(t, "medium", req.Priority)
}

func TestCreateDocumentRequest_Validation(t *testing.T) {
	svc := NewService(newStubRepo(), zap.NewNop())

	_, err := svc.CreateDocumentRequest(context.Background(), &CreateDocumentRequestInput{
		RecipientInstitution: "First Continental Bank",
	})
	assert.ErrorIs(t, err, ErrRequestTypeRequired)

	_, err = svc.CreateDocumentRequest(context.Background(), &CreateDocumentRequestInput{
		RequestType: "bank_statement",
	})
	assert.ErrorIs(t, err, ErrRecipientRequired)
}

func TestUpdateRequestStatus(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, zap.NewNop())

	req, err := svc.CreateDocumentRequest(context.Background(), &CreateDocumentRequestInput{
		RequestType:          "income_proof",
		RecipientInstitution: "First Continental Bank",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRequestStatus(context.Background(), req.ID, models.RequestStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, updated.Status)

	_, err = svc.UpdateRequestStatus(context.Background(), req.ID, "bogus")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateRequestStatus(context.Background(), "missing-id", models.RequestStatusRejected)
	assert.ErrorIs(t, err, repositories.ErrDocumentRequestNotFound)
}
