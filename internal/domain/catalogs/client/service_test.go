package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packquote/internal/core/apperror"
	"packquote/internal/domain"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	byID map[string]*Client
}

func newFakeRepo() *fakeRepo { return &fakeRepo{byID: make(map[string]*Client)} }

func (r *fakeRepo) Create(_ context.Context, c *Client) error {
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Client, error) {
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, apperror.NewNotFound("client", id)
}

func (r *fakeRepo) GetByCode(_ context.Context, code string) (*Client, error) {
	for _, c := range r.byID {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("client", code)
}

func (r *fakeRepo) Update(_ context.Context, c *Client) error {
	if _, ok := r.byID[c.ID]; !ok {
		return apperror.NewNotFound("client", c.ID)
	}
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeRepo) List(context.Context, domain.ListFilter) (*domain.ListResult[Client], error) {
	return &domain.ListResult[Client]{}, nil
}

func (r *fakeRepo) ExistsByTaxDocument(_ context.Context, taxDocument, defaultEntity, excludeID string) (bool, error) {
	for _, c := range r.byID {
		if c.ID == excludeID {
			continue
		}
		if c.TaxDocument == taxDocument && c.DefaultEntity == defaultEntity {
			return true, nil
		}
	}
	return false, nil
}

func draft(code, taxDocument, entity string) *Client {
	c := &Client{TaxDocument: taxDocument, DefaultEntity: entity}
	c.Code = code
	c.Name = code + " Ltda"
	return c
}

func TestCreateRejectsDuplicateTaxDocument(t *testing.T) {
	svc := NewService(newFakeRepo(), fakeTxManager{})

	_, err := svc.Create(context.Background(), draft("CLI-1", "11.222.333/0001-44", "ENTITY_A"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), draft("CLI-2", "11.222.333/0001-44", "ENTITY_A"))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
	assert.Equal(t, "11.222.333/0001-44", appErr.Details["value"])
}

func TestCreateSameTaxDocumentDifferentEntity(t *testing.T) {
	svc := NewService(newFakeRepo(), fakeTxManager{})

	_, err := svc.Create(context.Background(), draft("CLI-1", "11.222.333/0001-44", "ENTITY_A"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), draft("CLI-2", "11.222.333/0001-44", "ENTITY_B"))
	assert.NoError(t, err)
}

func TestCreateBlankTaxDocumentsCoexist(t *testing.T) {
	svc := NewService(newFakeRepo(), fakeTxManager{})

	_, err := svc.Create(context.Background(), draft("CLI-1", "", "ENTITY_A"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), draft("CLI-2", "   ", "ENTITY_A"))
	assert.NoError(t, err)
}

func TestUpdateKeepsOwnTaxDocument(t *testing.T) {
	svc := NewService(newFakeRepo(), fakeTxManager{})

	created, err := svc.Create(context.Background(), draft("CLI-1", "11.222.333/0001-44", "ENTITY_A"))
	require.NoError(t, err)

	created.TradeName = "Renamed"
	_, err = svc.Update(context.Background(), created)
	assert.NoError(t, err)
}

func TestUpdateRejectsTakenTaxDocument(t *testing.T) {
	svc := NewService(newFakeRepo(), fakeTxManager{})

	_, err := svc.Create(context.Background(), draft("CLI-1", "11.222.333/0001-44", "ENTITY_A"))
	require.NoError(t, err)
	other, err := svc.Create(context.Background(), draft("CLI-2", "55.666.777/0001-88", "ENTITY_A"))
	require.NoError(t, err)

	other.TaxDocument = "11.222.333/0001-44"
	_, err = svc.Update(context.Background(), other)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}
