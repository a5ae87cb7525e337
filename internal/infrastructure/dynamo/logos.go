package dynamo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/narcomap-api/internal/domain"
)

// LogoRepo provides typed DynamoDB operations for the logos table.
type LogoRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewLogoRepo(client *dynamodb.Client, tableName string) *LogoRepo {
	return &LogoRepo{client: client, tableName: tableName}
}

func (r *LogoRepo) Put(ctx context.Context, l *domain.Logo) error {
	item, err := attributevalue.MarshalMap(l)
	if err != nil {
		return fmt.Errorf("marshal logo: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *LogoRepo) Get(ctx context.Context, logoID string) (*domain.Logo, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("logo_id", logoID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("logo not found: %w", domain.ErrNotFound)
	}
	var l domain.Logo
	if err := attributevalue.UnmarshalMap(out.Item, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LogoRepo) List(ctx context.Context) ([]domain.Logo, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	var logos []domain.Logo
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &logos); err != nil {
		return nil, err
	}
	sort.Slice(logos, func(i, j int) bool { return logos[i].CreatedAt.After(logos[j].CreatedAt) })
	return logos, nil
}

// GetActive returns the newest active logo, or ErrNotFound when none is set.
func (r *LogoRepo) GetActive(ctx context.Context) (*domain.Logo, error) {
	logos, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range logos {
		if logos[i].Active {
			return &logos[i], nil
		}
	}
	return nil, fmt.Errorf("no active logo: %w", domain.ErrNotFound)
}

func (r *LogoRepo) Update(ctx context.Context, logoID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("logo_id", logoID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ConditionExpression:       aws.String("attribute_exists(logo_id)"),
	})
	if isConditionFailed(err) {
		return fmt.Errorf("logo not found: %w", domain.ErrNotFound)
	}
	return err
}

func (r *LogoRepo) Delete(ctx context.Context, logoID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("logo_id", logoID),
		ConditionExpression: aws.String("attribute_exists(logo_id)"),
	})
	if isConditionFailed(err) {
		return fmt.Errorf("logo not found: %w", domain.ErrNotFound)
	}
	return err
}
