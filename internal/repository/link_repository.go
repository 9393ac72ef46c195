package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/models"
)

var ErrLinkNotFound = errors.New("link not found")

// LinkRepository точечные чтения записей ссылок по первичному ключу
type LinkRepository interface {
	Get(ctx context.Context, key string) (*models.LinkRecord, error)
}

type linkRepository struct {
	db    *DynamoDB
	table string
}

func NewLinkRepository(db *DynamoDB, table string) LinkRepository {
	return &linkRepository{db: db, table: table}
}

func (r *linkRepository) Get(ctx context.Context, key string) (*models.LinkRecord, error) {
	out, err := r.db.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.table,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get link %q: %w", key, err)
	}

	if len(out.Item) == 0 {
		return nil, ErrLinkNotFound
	}

	record := &models.LinkRecord{}
	if err := attributevalue.UnmarshalMap(out.Item, record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal link %q: %w", key, err)
	}

	return record, nil
}
