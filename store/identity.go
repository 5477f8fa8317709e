package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamoTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	apperror "github.com/mlmarch/mlmarch-gateway/errors"
	"github.com/mlmarch/mlmarch-gateway/health"
)

// Identity links a sign-in provider account to the backend user with the same email.
type Identity struct {
	Email       string    `json:"email" dynamodbav:"email"`
	Provider    string    `json:"provider" dynamodbav:"provider"`
	ProviderID  string    `json:"provider_id" dynamodbav:"provider_id"`
	Username    string    `json:"username,omitempty" dynamodbav:"username,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty" dynamodbav:"avatar_url,omitempty"`
	BackendID   string    `json:"backend_id,omitempty" dynamodbav:"backend_id,omitempty"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
	LastLoginAt time.Time `json:"last_login_at" dynamodbav:"last_login_at"`
}

type IdentityStore interface {
	GetByEmail(ctx context.Context, email string) (*Identity, error)
	Upsert(ctx context.Context, identity Identity) error

	health.ReadinessCheck
}

// DynamoDBAPI is the subset of *dynamodb.Client the identity store uses.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

type DynamoDbIdentityStore struct {
	Client    DynamoDBAPI
	TableName string
}

func NewIdentityStore(dbClient DynamoDBAPI, tableName string) *DynamoDbIdentityStore {
	return &DynamoDbIdentityStore{
		Client:    dbClient,
		TableName: tableName,
	}
}

func (s *DynamoDbIdentityStore) IsReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	_, err := s.Client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.TableName),
	})

	return err
}

func (s *DynamoDbIdentityStore) Name() string {
	return "IdentityStore[" + s.TableName + "]"
}

func (s *DynamoDbIdentityStore) GetByEmail(ctx context.Context, email string) (*Identity, error) {
	res, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.TableName),
		Key: map[string]dynamoTypes.AttributeValue{
			"email": &dynamoTypes.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get identity: %w", err)
	}
	if res.Item == nil {
		return nil, apperror.ErrIdentityNotFound
	}

	var identity Identity
	if err := attributevalue.UnmarshalMap(res.Item, &identity); err != nil {
		return nil, fmt.Errorf("unmarshal identity: %w", err)
	}

	return &identity, nil
}

// Upsert writes identity, keeping the original CreatedAt when the item exists.
func (s *DynamoDbIdentityStore) Upsert(ctx context.Context, identity Identity) error {
	existing, err := s.GetByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		identity.CreatedAt = existing.CreatedAt
		if identity.BackendID == "" {
			identity.BackendID = existing.BackendID
		}
	case errors.Is(err, apperror.ErrIdentityNotFound):
		if identity.CreatedAt.IsZero() {
			identity.CreatedAt = identity.LastLoginAt
		}
	default:
		return err
	}

	item, err := attributevalue.MarshalMap(identity)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.TableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put identity: %w", err)
	}
	return nil
}
