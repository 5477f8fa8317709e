package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamoTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	apperror "github.com/mlmarch/mlmarch-gateway/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDynamoDB struct {
	mock.Mock
}

func (m *MockDynamoDB) GetItem(ctx context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.GetItemOutput), args.Error(1)
}

func (m *MockDynamoDB) PutItem(ctx context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.PutItemOutput), args.Error(1)
}

func (m *MockDynamoDB) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.DescribeTableOutput), args.Error(1)
}

func keyIs(email string) any {
	return mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
		v, ok := in.Key["email"].(*dynamoTypes.AttributeValueMemberS)
		return ok && v.Value == email && *in.TableName == "identities"
	})
}

func TestGetByEmail_NotFound(t *testing.T) {
	db := new(MockDynamoDB)
	db.On("GetItem", mock.Anything, keyIs("a@x.com")).Return(&dynamodb.GetItemOutput{}, nil).Once()

	_, err := NewIdentityStore(db, "identities").GetByEmail(context.Background(), "a@x.com")

	assert.ErrorIs(t, err, apperror.ErrIdentityNotFound)
}

func TestGetByEmail_DatabaseFailure(t *testing.T) {
	db := new(MockDynamoDB)
	db.On("GetItem", mock.Anything, keyIs("a@x.com")).Return(nil, errors.New("throttled")).Once()

	_, err := NewIdentityStore(db, "identities").GetByEmail(context.Background(), "a@x.com")

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperror.ErrIdentityNotFound)
}

func TestUpsert_NewIdentity(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	db := new(MockDynamoDB)
	db.On("GetItem", mock.Anything, keyIs("a@x.com")).Return(&dynamodb.GetItemOutput{}, nil).Once()

	var written Identity
	db.On("PutItem", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		in := args.Get(1).(*dynamodb.PutItemInput)
		require.NoError(t, attributevalue.UnmarshalMap(in.Item, &written))
	}).Return(&dynamodb.PutItemOutput{}, nil).Once()

	err := NewIdentityStore(db, "identities").Upsert(context.Background(), Identity{
		Email:       "a@x.com",
		Provider:    "github",
		ProviderID:  "42",
		LastLoginAt: now,
	})

	require.NoError(t, err)
	assert.Equal(t, "github", written.Provider)
	assert.True(t, written.CreatedAt.Equal(now))
	db.AssertExpectations(t)
}

func TestUpsert_KeepsCreatedAtAndBackendID(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	item, err := attributevalue.MarshalMap(Identity{
		Email:     "a@x.com",
		Provider:  "google",
		BackendID: "u1",
		CreatedAt: created,
	})
	require.NoError(t, err)

	db := new(MockDynamoDB)
	db.On("GetItem", mock.Anything, keyIs("a@x.com")).Return(&dynamodb.GetItemOutput{Item: item}, nil).Once()

	var written Identity
	db.On("PutItem", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		in := args.Get(1).(*dynamodb.PutItemInput)
		require.NoError(t, attributevalue.UnmarshalMap(in.Item, &written))
	}).Return(&dynamodb.PutItemOutput{}, nil).Once()

	err = NewIdentityStore(db, "identities").Upsert(context.Background(), Identity{
		Email:       "a@x.com",
		Provider:    "github",
		LastLoginAt: created.Add(48 * time.Hour),
	})

	require.NoError(t, err)
	assert.True(t, written.CreatedAt.Equal(created))
	assert.Equal(t, "u1", written.BackendID)
	assert.Equal(t, "github", written.Provider)
}

func TestIsReady(t *testing.T) {
	db := new(MockDynamoDB)
	db.On("DescribeTable", mock.Anything, mock.Anything).Return(nil, errors.New("ResourceNotFoundException")).Once()

	s := NewIdentityStore(db, "identities")

	assert.Error(t, s.IsReady(context.Background()))
	assert.Equal(t, "IdentityStore[identities]", s.Name())
}
