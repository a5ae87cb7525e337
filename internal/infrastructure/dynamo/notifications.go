package dynamo

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/narcomap-api/internal/domain"
)

// unreadFilter matches notifications not read by the given admin: the legacy
// global flag is unset and the admin is not in the read-by set.
const unreadFilter = "(attribute_not_exists(#r) OR #r = :false) AND (attribute_not_exists(read_by) OR NOT contains(read_by, :uid))"

// NotificationRepo provides typed DynamoDB operations for the notifications table.
//
// The read-by set is stored as a DynamoDB string set; ADD gives atomic,
// idempotent set membership so concurrent mark-read calls cannot lose updates.
type NotificationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewNotificationRepo(client *dynamodb.Client, tableName string) *NotificationRepo {
	return &NotificationRepo{client: client, tableName: tableName}
}

func (r *NotificationRepo) Put(ctx context.Context, n *domain.Notification) error {
	item, err := attributevalue.MarshalMap(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *NotificationRepo) Get(ctx context.Context, notificationID string) (*domain.Notification, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("notification_id", notificationID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("notification not found: %w", domain.ErrNotFound)
	}
	var n domain.Notification
	if err := attributevalue.UnmarshalMap(out.Item, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// List returns up to limit notifications, newest first. When unreadFor is
// non-empty only notifications unread for that admin are returned.
// Notification ids are ULIDs, so lexicographic id order is creation order.
func (r *NotificationRepo) List(ctx context.Context, unreadFor string, limit int) ([]domain.Notification, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if unreadFor != "" {
		input.FilterExpression = aws.String(unreadFilter)
		input.ExpressionAttributeNames = map[string]string{"#r": "read"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":false": &types.AttributeValueMemberBOOL{Value: false},
			":uid":   &types.AttributeValueMemberS{Value: unreadFor},
		}
	}
	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, err
	}
	var notifications []domain.Notification
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &notifications); err != nil {
		return nil, err
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].NotificationID > notifications[j].NotificationID
	})
	if limit > 0 && len(notifications) > limit {
		notifications = notifications[:limit]
	}
	return notifications, nil
}

// MarkRead adds adminID to the read-by set and returns the updated record.
// ADD on a string set is a no-op when the member is already present.
func (r *NotificationRepo) MarkRead(ctx context.Context, notificationID, adminID string) (*domain.Notification, error) {
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              strKey("notification_id", notificationID),
		UpdateExpression: aws.String("ADD read_by :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberSS{Value: []string{adminID}},
		},
		ConditionExpression: aws.String("attribute_exists(notification_id)"),
		ReturnValues:        types.ReturnValueAllNew,
	})
	if isConditionFailed(err) {
		return nil, fmt.Errorf("notification not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	var n domain.Notification
	if err := attributevalue.UnmarshalMap(out.Attributes, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkAllRead adds adminID to the read-by set of every notification still
// unread for that admin. The updates run as TransactWriteItems batches so
// no batch can be applied partially; each update is an idempotent set-add,
// so notifications created concurrently are simply left for the next call.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, adminID string) error {
	unread, err := r.List(ctx, adminID, 0)
	if err != nil {
		return err
	}
	const batchSize = 100 // TransactWriteItems limit
	for start := 0; start < len(unread); start += batchSize {
		end := start + batchSize
		if end > len(unread) {
			end = len(unread)
		}
		items := make([]types.TransactWriteItem, 0, end-start)
		for _, n := range unread[start:end] {
			items = append(items, types.TransactWriteItem{
				Update: &types.Update{
					TableName:        aws.String(r.tableName),
					Key:              strKey("notification_id", n.NotificationID),
					UpdateExpression: aws.String("ADD read_by :uid"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":uid": &types.AttributeValueMemberSS{Value: []string{adminID}},
					},
				},
			})
		}
		if _, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
			TransactItems: items,
		}); err != nil {
			return err
		}
	}
	return nil
}

// CountUnread counts notifications unread for the given admin.
func (r *NotificationRepo) CountUnread(ctx context.Context, adminID string) (int, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:                aws.String(r.tableName),
		Select:                   types.SelectCount,
		FilterExpression:         aws.String(unreadFilter),
		ExpressionAttributeNames: map[string]string{"#r": "read"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":false": &types.AttributeValueMemberBOOL{Value: false},
			":uid":   &types.AttributeValueMemberS{Value: adminID},
		},
	})
	if err != nil {
		return 0, err
	}
	return int(out.Count), nil
}
