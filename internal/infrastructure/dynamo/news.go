package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/narcomap-api/internal/domain"
)

// NewsRepo provides typed DynamoDB operations for the news table.
type NewsRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewNewsRepo(client *dynamodb.Client, tableName string) *NewsRepo {
	return &NewsRepo{client: client, tableName: tableName}
}

func (r *NewsRepo) Put(ctx context.Context, n *domain.News) error {
	item, err := attributevalue.MarshalMap(n)
	if err != nil {
		return fmt.Errorf("marshal news: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *NewsRepo) Get(ctx context.Context, newsID string) (*domain.News, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("news_id", newsID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("news not found: %w", domain.ErrNotFound)
	}
	var n domain.News
	if err := attributevalue.UnmarshalMap(out.Item, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// List returns all articles; filtering, search and ordering happen in the
// service since the tables hold admin-scale volumes.
func (r *NewsRepo) List(ctx context.Context) ([]domain.News, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	var articles []domain.News
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *NewsRepo) Update(ctx context.Context, newsID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("news_id", newsID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ConditionExpression:       aws.String("attribute_exists(news_id)"),
	})
	if isConditionFailed(err) {
		return fmt.Errorf("news not found: %w", domain.ErrNotFound)
	}
	return err
}

// IncrementViews atomically bumps the view counter and returns the new value.
// The database's add-in-place substitutes for locking under concurrent reads.
func (r *NewsRepo) IncrementViews(ctx context.Context, newsID string) (int, error) {
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              strKey("news_id", newsID),
		UpdateExpression: aws.String("ADD #v :one"),
		ExpressionAttributeNames: map[string]string{
			"#v": "views",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ConditionExpression: aws.String("attribute_exists(news_id)"),
		ReturnValues:        types.ReturnValueUpdatedNew,
	})
	if isConditionFailed(err) {
		return 0, fmt.Errorf("news not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return 0, err
	}
	var updated struct {
		Views int `dynamodbav:"views"`
	}
	if err := attributevalue.UnmarshalMap(out.Attributes, &updated); err != nil {
		return 0, err
	}
	return updated.Views, nil
}

func (r *NewsRepo) Delete(ctx context.Context, newsID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("news_id", newsID),
		ConditionExpression: aws.String("attribute_exists(news_id)"),
	})
	if isConditionFailed(err) {
		return fmt.Errorf("news not found: %w", domain.ErrNotFound)
	}
	return err
}
