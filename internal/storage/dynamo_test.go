package storage

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeDynamo struct {
	getFn      func(ctx context.Context, in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	putFn      func(ctx context.Context, in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	deleteFn   func(ctx context.Context, in *dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error)
	batchFn    func(ctx context.Context, in *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error)
	queryFn    func(ctx context.Context, in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	describeFn func(ctx context.Context, in *dynamodb.DescribeTableInput) (*dynamodb.DescribeTableOutput, error)
}

func (f *fakeDynamo) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return f.getFn(ctx, in)
}
func (f *fakeDynamo) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return f.putFn(ctx, in)
}
func (f *fakeDynamo) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	return f.deleteFn(ctx, in)
}
func (f *fakeDynamo) BatchWriteItem(ctx context.Context, in *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	return f.batchFn(ctx, in)
}
func (f *fakeDynamo) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return f.queryFn(ctx, in)
}
func (f *fakeDynamo) DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return f.describeFn(ctx, in)
}

func testKey(n int) Key {
	return Key{
		"pk": &types.AttributeValueMemberS{Value: "P"},
		"sk": &types.AttributeValueMemberS{Value: strconv.Itoa(n)},
	}
}

func testItem(n int) Item {
	return Item(testKey(n))
}

func TestGetMissingItemIsNil(t *testing.T) {
	fake := &fakeDynamo{
		getFn: func(_ context.Context, _ *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{}, nil
		},
	}
	store := New(fake, "catalog")

	item, err := store.Get(context.Background(), testKey(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item != nil {
		t.Fatalf("want nil item for missing key, got %v", item)
	}
}

func TestQueryAllFollowsContinuationKeys(t *testing.T) {
	// Three pages: two items, then a zero-item page that still carries a
	// continuation key, then the final item. The loop must not stop early.
	pages := []*dynamodb.QueryOutput{
		{Items: []Item{testItem(1), testItem(2)}, LastEvaluatedKey: testKey(2)},
		{Items: nil, LastEvaluatedKey: testKey(2)},
		{Items: []Item{testItem(3)}},
	}
	var calls int
	var startKeys []Key
	fake := &fakeDynamo{
		queryFn: func(_ context.Context, in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			startKeys = append(startKeys, in.ExclusiveStartKey)
			out := pages[calls]
			calls++
			return out, nil
		},
	}
	store := New(fake, "catalog")

	items, err := store.QueryAll(context.Background(), "P", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("want 3 items across pages, got %d", len(items))
	}
	if calls != 3 {
		t.Fatalf("want 3 page requests, got %d", calls)
	}
	if startKeys[0] != nil {
		t.Fatalf("first page must start from the beginning")
	}
	if startKeys[1] == nil || startKeys[2] == nil {
		t.Fatalf("continuation pages must resume from the prior page's key")
	}
}

func TestQueryPassesSortDirection(t *testing.T) {
	var gotForward *bool
	fake := &fakeDynamo{
		queryFn: func(_ context.Context, in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			gotForward = in.ScanIndexForward
			return &dynamodb.QueryOutput{}, nil
		},
	}
	store := New(fake, "timeseries")

	if _, _, err := store.Query(context.Background(), "url-1", false, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotForward == nil || aws.ToBool(gotForward) {
		t.Fatalf("want descending query, got ScanIndexForward=%v", gotForward)
	}
}

func TestBatchDeleteChunks(t *testing.T) {
	var sizes []int
	fake := &fakeDynamo{
		batchFn: func(_ context.Context, in *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error) {
			sizes = append(sizes, len(in.RequestItems["timeseries"]))
			return &dynamodb.BatchWriteItemOutput{}, nil
		},
	}
	store := New(fake, "timeseries")

	keys := make([]Key, 60)
	for i := range keys {
		keys[i] = testKey(i)
	}

	unprocessed, err := store.BatchDelete(context.Background(), keys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unprocessed) != 0 {
		t.Fatalf("want no unprocessed keys, got %d", len(unprocessed))
	}
	want := []int{25, 25, 10}
	if len(sizes) != len(want) {
		t.Fatalf("want %d requests, got %d", len(want), len(sizes))
	}
	for i, size := range want {
		if sizes[i] != size {
			t.Fatalf("request %d: want %d keys, got %d", i, size, sizes[i])
		}
	}
}

func TestBatchDeleteReportsUnprocessed(t *testing.T) {
	fake := &fakeDynamo{
		batchFn: func(_ context.Context, in *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error) {
			reqs := in.RequestItems["timeseries"]
			// The store keeps the last two keys of every request.
			keep := reqs[len(reqs)-2:]
			return &dynamodb.BatchWriteItemOutput{
				UnprocessedItems: map[string][]types.WriteRequest{"timeseries": keep},
			}, nil
		},
	}
	store := New(fake, "timeseries")

	keys := make([]Key, 30)
	for i := range keys {
		keys[i] = testKey(i)
	}

	unprocessed, err := store.BatchDelete(context.Background(), keys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unprocessed) != 4 {
		t.Fatalf("want 4 unprocessed keys (2 per request), got %d", len(unprocessed))
	}
}

func TestBatchDeleteFailureReturnsRemainingKeys(t *testing.T) {
	errThrottle := errors.New("throttled")
	var calls int
	fake := &fakeDynamo{
		batchFn: func(_ context.Context, _ *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error) {
			calls++
			if calls == 2 {
				return nil, errThrottle
			}
			return &dynamodb.BatchWriteItemOutput{}, nil
		},
	}
	store := New(fake, "timeseries")

	keys := make([]Key, 60)
	for i := range keys {
		keys[i] = testKey(i)
	}

	unprocessed, err := store.BatchDelete(context.Background(), keys)
	if !errors.Is(err, errThrottle) {
		t.Fatalf("want error wrapping %v, got %v", errThrottle, err)
	}
	// Everything from the failed request onward counts as unprocessed.
	if len(unprocessed) != 35 {
		t.Fatalf("want 35 unprocessed keys, got %d", len(unprocessed))
	}
}
