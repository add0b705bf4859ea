package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	// batchWriteLimit is DynamoDB's cap on items per BatchWriteItem request.
	batchWriteLimit = 25

	healthCheckTimeout = 2 * time.Second
)

// Item is a raw table row; Key is the pk/sk pair identifying one.
type (
	Item = map[string]types.AttributeValue
	Key  = map[string]types.AttributeValue
)

// API is the subset of the DynamoDB client the adapter uses.
type API interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	BatchWriteItem(ctx context.Context, in *dynamodb.BatchWriteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, opts ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Store is a thin partition/sort-key client bound to one table. It imposes
// no retry policy; store errors propagate to the caller as-is.
type Store struct {
	client API
	table  string
}

func New(client API, table string) *Store {
	return &Store{client: client, table: table}
}

// Get returns the item under key, or nil when the item does not exist.
func (s *Store) Get(ctx context.Context, key Key) (Item, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("get item from %s: %w", s.table, err)
	}
	return out.Item, nil
}

func (s *Store) Put(ctx context.Context, item Item) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item to %s: %w", s.table, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key Key) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("delete item from %s: %w", s.table, err)
	}
	return nil
}

// BatchDelete removes keys in chunks of at most 25 per request. It is
// best-effort: the returned slice holds every key the store did not
// process, whether because a request failed outright or because the store
// reported it unprocessed. A non-empty return with a nil error means the
// caller should retry exactly those keys.
func (s *Store) BatchDelete(ctx context.Context, keys []Key) ([]Key, error) {
	var unprocessed []Key

	for start := 0; start < len(keys); start += batchWriteLimit {
		end := start + batchWriteLimit
		if end > len(keys) {
			end = len(keys)
		}
		chunk := keys[start:end]

		reqs := make([]types.WriteRequest, len(chunk))
		for i, key := range chunk {
			reqs[i] = types.WriteRequest{DeleteRequest: &types.DeleteRequest{Key: key}}
		}

		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{s.table: reqs},
		})
		if err != nil {
			unprocessed = append(unprocessed, keys[start:]...)
			return unprocessed, fmt.Errorf("batch delete from %s: %w", s.table, err)
		}
		for _, req := range out.UnprocessedItems[s.table] {
			if req.DeleteRequest != nil {
				unprocessed = append(unprocessed, req.DeleteRequest.Key)
			}
		}
	}

	return unprocessed, nil
}

// Query reads one page of the partition in sort-key order. A non-nil next
// key means more results exist and must be fetched with it, even when the
// page itself carried zero items.
func (s *Store) Query(ctx context.Context, partitionKey string, forward bool, startAfter Key) ([]Item, Key, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: partitionKey},
		},
		ScanIndexForward:  aws.Bool(forward),
		ExclusiveStartKey: startAfter,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("query %s partition %q: %w", s.table, partitionKey, err)
	}
	return out.Items, out.LastEvaluatedKey, nil
}

// QueryAll follows continuation keys until the store stops returning one,
// concatenating every page. This is the single pagination loop behind all
// of the repositories' list operations.
func (s *Store) QueryAll(ctx context.Context, partitionKey string, forward bool) ([]Item, error) {
	var (
		items []Item
		start Key
	)
	for {
		page, next, err := s.Query(ctx, partitionKey, forward, start)
		if err != nil {
			return nil, err
		}
		items = append(items, page...)
		if next == nil {
			return items, nil
		}
		start = next
	}
}

func (s *Store) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	})
	return err
}
