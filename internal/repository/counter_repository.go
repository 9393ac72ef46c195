package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrOfferNotFound = errors.New("offer record not found")

// CounterRepository атомарные инкременты счётчиков кликов.
// Никогда не создаёт и не удаляет записи: только счётчик внутри существующей
// записи (оффер) либо счётчик-атрибут записи ссылки.
type CounterRepository interface {
	// IncrementLinkClicks увеличивает счётчик кликов записи ссылки,
	// инициализируя атрибут нулём при отсутствии
	IncrementLinkClicks(ctx context.Context, key string) error
	// IncrementOfferClicks увеличивает счётчик кликов оффера при условии,
	// что запись существует; отсутствие записи — ErrOfferNotFound
	IncrementOfferClicks(ctx context.Context, table, partitionKey, offerID string) error
}

type counterRepository struct {
	db    *DynamoDB
	table string
}

func NewCounterRepository(db *DynamoDB, linksTable string) CounterRepository {
	return &counterRepository{db: db, table: linksTable}
}

func (r *counterRepository) IncrementLinkClicks(ctx context.Context, key string) error {
	_, err := r.db.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &r.table,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: key},
		},
		UpdateExpression: aws.String("SET Clicks = if_not_exists(Clicks, :zero) + :inc"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":inc":  &types.AttributeValueMemberN{Value: "1"},
			":zero": &types.AttributeValueMemberN{Value: "0"},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to increment clicks for %q: %w", key, err)
	}

	return nil
}

func (r *counterRepository) IncrementOfferClicks(ctx context.Context, table, partitionKey, offerID string) error {
	_, err := r.db.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &table,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: partitionKey},
			"SK": &types.AttributeValueMemberS{Value: offerID},
		},
		UpdateExpression: aws.String("SET Clicks = if_not_exists(Clicks, :initial) + :increment"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":increment": &types.AttributeValueMemberN{Value: "1"},
			":initial":   &types.AttributeValueMemberN{Value: "0"},
		},
		// Учёт не должен создавать офферы как побочный эффект клика
		ConditionExpression: aws.String("attribute_exists(SK)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return ErrOfferNotFound
		}
		return fmt.Errorf("failed to increment offer clicks for %q/%q: %w", partitionKey, offerID, err)
	}

	return nil
}
