package items

import (
	"context"
	"testing"

	"github.com/angelmondragon/store-service/internal/stores"
	"github.com/angelmondragon/store-service/pkg/db"
	"github.com/angelmondragon/store-service/pkg/db/dbtest"
	"github.com/angelmondragon/store-service/pkg/db/models"
	pkgerrors "github.com/angelmondragon/store-service/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	client := dbtest.New(t)
	svc, err := NewService(NewRepository(client.DB()), stores.NewRepository(client.DB()), client)
	require.NoError(t, err)
	return svc, client
}

func seedStore(t *testing.T, client *db.Client, name string) models.Store {
	t.Helper()
	store := models.Store{Name: name}
	require.NoError(t, client.DB().Create(&store).Error)
	return store
}

func price(v float64) *float64 { return &v }

func TestNewServiceRequiresDependencies(t *testing.T) {
	client := dbtest.New(t)
	_, err := NewService(nil, stores.NewRepository(client.DB()), client)
	assert.Error(t, err)
	_, err = NewService(NewRepository(client.DB()), nil, client)
	assert.Error(t, err)
	_, err = NewService(NewRepository(client.DB()), stores.NewRepository(client.DB()), nil)
	assert.Error(t, err)
}

func TestServiceCreateReturnsNestedStore(t *testing.T) {
	svc, client := newTestService(t)
	store := seedStore(t, client, "Acme")

	item, err := svc.Create(context.Background(), CreateItemInput{Name: "Soap", Price: price(3.5), StoreID: store.ID})
	require.NoError(t, err)
	assert.NotZero(t, item.ProductID)
	assert.Equal(t, 3.5, item.Price)
	assert.Equal(t, store.ID, item.StoreID)
	require.NotNil(t, item.Store)
	assert.Equal(t, "Acme", item.Store.Name)
	assert.NotNil(t, item.Tags)
	assert.Empty(t, item.Tags)
}

func TestServiceCreateRejectsMissingStore(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateItemInput{Name: "Soap", Price: price(1), StoreID: 42})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound), "got %v", err)
}

func TestServiceCreateDuplicateName(t *testing.T) {
	svc, client := newTestService(t)
	store := seedStore(t, client, "Acme")
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateItemInput{Name: "Soap", Price: price(1), StoreID: store.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateItemInput{Name: "Soap", Price: price(2), StoreID: store.ID})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict), "got %v", err)
}

func TestServiceCreateRequiresPrice(t *testing.T) {
	svc, client := newTestService(t)
	store := seedStore(t, client, "Acme")

	_, err := svc.Create(context.Background(), CreateItemInput{Name: "Soap", StoreID: store.ID})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "got %v", err)
}

func TestServiceUpsertPartialUpdate(t *testing.T) {
	svc, client := newTestService(t)
	store := seedStore(t, client, "Acme")
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateItemInput{Name: "Soap", Price: price(3.5), StoreID: store.ID})
	require.NoError(t, err)

	updated, err := svc.Upsert(ctx, created.ProductID, UpdateItemInput{Price: price(4)})
	require.NoError(t, err)
	assert.Equal(t, "Soap", updated.Name)
	assert.Equal(t, float64(4), updated.Price)

	name := "Bar Soap"
	updated, err = svc.Upsert(ctx, created.ProductID, UpdateItemInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Bar Soap", updated.Name)
	assert.Equal(t, float64(4), updated.Price)
}

func TestServiceUpsertMovesItemBetweenStores(t *testing.T) {
	svc, client := newTestService(t)
	a := seedStore(t, client, "A")
	b := seedStore(t, client, "B")
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateItemInput{Name: "Soap", Price: price(1), StoreID: a.ID})
	require.NoError(t, err)

	moved, err := svc.Upsert(ctx, created.ProductID, UpdateItemInput{StoreID: &b.ID})
	require.NoError(t, err)
	assert.Equal(t, b.ID, moved.StoreID)
	require.NotNil(t, moved.Store)
	assert.Equal(t, "B", moved.Store.Name)

	missing := uint(999)
	_, err = svc.Upsert(ctx, created.ProductID, UpdateItemInput{StoreID: &missing})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound), "got %v", err)
}

func TestServiceUpsertCreatesWhenAbsent(t *testing.T) {
	svc, client := newTestService(t)
	store := seedStore(t, client, "Acme")
	ctx := context.Background()

	name := "Lotion"
	_, err := svc.Upsert(ctx, 5, UpdateItemInput{Name: &name})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "got %v", err)

	created, err := svc.Upsert(ctx, 5, UpdateItemInput{Name: &name, Price: price(9), StoreID: &store.ID})
	require.NoError(t, err)
	assert.Equal(t, uint(5), created.ProductID)

	next, err := svc.Create(ctx, CreateItemInput{Name: "Brush", Price: price(2), StoreID: store.ID})
	require.NoError(t, err)
	assert.Greater(t, next.ProductID, uint(5))
}

func TestServiceDeleteRemovesLinks(t *testing.T) {
	svc, client := newTestService(t)
	store := seedStore(t, client, "Acme")
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateItemInput{Name: "Soap", Price: price(1), StoreID: store.ID})
	require.NoError(t, err)
	tag := models.Tag{Name: "Bath", StoreID: store.ID}
	require.NoError(t, client.DB().Create(&tag).Error)
	require.NoError(t, client.DB().Create(&models.ItemTag{ItemID: item.ProductID, TagID: tag.ID}).Error)

	require.NoError(t, svc.Delete(ctx, item.ProductID))

	_, err = svc.GetByID(ctx, item.ProductID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	var links int64
	require.NoError(t, client.DB().Model(&models.ItemTag{}).Count(&links).Error)
	assert.Zero(t, links)

	err = svc.Delete(ctx, item.ProductID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestServiceListIncludesTags(t *testing.T) {
	svc, client := newTestService(t)
	store := seedStore(t, client, "Acme")
	ctx := context.Background()

	soap, err := svc.Create(ctx, CreateItemInput{Name: "Soap", Price: price(1), StoreID: store.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateItemInput{Name: "Brush", Price: price(2), StoreID: store.ID})
	require.NoError(t, err)

	tag := models.Tag{Name: "Bath", StoreID: store.ID}
	require.NoError(t, client.DB().Create(&tag).Error)
	require.NoError(t, client.DB().Create(&models.ItemTag{ItemID: soap.ProductID, TagID: tag.ID}).Error)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Len(t, all[0].Tags, 1)
	assert.Equal(t, "Bath", all[0].Tags[0].Name)
	assert.Empty(t, all[1].Tags)
}
