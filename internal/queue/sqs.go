// Package queue sends serialized urls to the scrape work queue.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"price-tracker/internal/catalog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

const (
	// maxBatchEntries is SQS's cap on entries per SendMessageBatch request.
	maxBatchEntries = 10

	// deliveryDelaySeconds holds each message back before it becomes
	// visible, spreading scraper load across the fan-out window.
	deliveryDelaySeconds = 10
)

// API is the subset of the SQS client the sender uses.
type API interface {
	SendMessageBatch(ctx context.Context, in *sqs.SendMessageBatchInput, opts ...func(*sqs.Options)) (*sqs.SendMessageBatchOutput, error)
}

type Sender struct {
	client   API
	queueURL string
	logger   *slog.Logger
}

func NewSender(client API, queueURL string, logger *slog.Logger) *Sender {
	return &Sender{client: client, queueURL: queueURL, logger: logger}
}

// SendURLs enqueues one JSON message per url, splitting into batches of at
// most ten entries. It returns the number of messages the queue accepted;
// entries the queue rejects are logged, not retried.
func (s *Sender) SendURLs(ctx context.Context, urls []catalog.ProductURL) (int, error) {
	sent := 0

	for start := 0; start < len(urls); start += maxBatchEntries {
		end := start + maxBatchEntries
		if end > len(urls) {
			end = len(urls)
		}
		batch := urls[start:end]

		entries := make([]sqstypes.SendMessageBatchRequestEntry, len(batch))
		for i, u := range batch {
			body, err := json.Marshal(u)
			if err != nil {
				return sent, fmt.Errorf("marshal url %s: %w", u.ProductURLID, err)
			}
			// Entry ids only need to be unique within one request.
			entries[i] = sqstypes.SendMessageBatchRequestEntry{
				Id:           aws.String(strconv.Itoa(i)),
				MessageBody:  aws.String(string(body)),
				DelaySeconds: deliveryDelaySeconds,
			}
		}

		out, err := s.client.SendMessageBatch(ctx, &sqs.SendMessageBatchInput{
			QueueUrl: aws.String(s.queueURL),
			Entries:  entries,
		})
		if err != nil {
			return sent, fmt.Errorf("send batch of %d urls: %w", len(entries), err)
		}
		sent += len(out.Successful)
		for _, failed := range out.Failed {
			s.logger.Error("queue rejected url message",
				"entry_id", aws.ToString(failed.Id),
				"code", aws.ToString(failed.Code),
				"message", aws.ToString(failed.Message),
			)
		}
	}

	return sent, nil
}
