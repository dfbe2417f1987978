package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// receiveBackoff is the pause after a failed receive call before polling again.
const receiveBackoff = 2 * time.Second

// RecordHandler processes one raw queue record.
type RecordHandler interface {
	HandleRecord(ctx context.Context, body []byte) error
}

// SQSAPI is the subset of the SQS client the consumer uses.
type SQSAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Config holds consumer tuning.
type Config struct {
	QueueURL     string
	WaitTime     time.Duration
	MaxMessages  int
	BatchTimeout time.Duration
}

// Consumer long-polls the order notification queue and hands each record to
// the handler. Records are processed sequentially within a batch; a failed
// record is not deleted, so the queue's visibility timeout, max receive
// count and dead letter policy drive redelivery. Delivery is therefore
// at-least-once: a redelivered record is reprocessed identically and
// produces a duplicate email.
type Consumer struct {
	client  SQSAPI
	handler RecordHandler
	cfg     Config
	logger  *logrus.Entry

	cancel  context.CancelFunc
	done    chan struct{}
	running atomic.Bool
}

// NewConsumer creates a new queue consumer
func NewConsumer(client SQSAPI, handler RecordHandler, cfg Config) *Consumer {
	if cfg.WaitTime <= 0 {
		cfg.WaitTime = 20 * time.Second
	}
	if cfg.MaxMessages <= 0 {
		cfg.MaxMessages = 10
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = time.Minute
	}
	return &Consumer{
		client:  client,
		handler: handler,
		cfg:     cfg,
		logger:  logrus.WithField("component", "consumer"),
	}
}

// Start launches the poll loop.
func (c *Consumer) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	c.running.Store(true)
	go c.run(ctx)
	c.logger.WithField("queue_url", c.cfg.QueueURL).Info("consumer started")
}

// Stop cancels the poll loop and waits for the in-flight batch to finish.
func (c *Consumer) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	if c.done != nil {
		<-c.done
	}
	c.logger.Info("consumer stopped")
}

// Running reports whether the poll loop is active.
func (c *Consumer) Running() bool {
	return c.running.Load()
}

func (c *Consumer) run(ctx context.Context) {
	defer close(c.done)
	defer c.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		out, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(c.cfg.QueueURL),
			MaxNumberOfMessages: int32(c.cfg.MaxMessages),
			WaitTimeSeconds:     int32(c.cfg.WaitTime / time.Second),
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.WithError(err).Error("failed to receive messages")
			select {
			case <-ctx.Done():
				return
			case <-time.After(receiveBackoff):
			}
			continue
		}
		if len(out.Messages) == 0 {
			continue
		}

		c.processBatch(ctx, out.Messages)
	}
}

// processBatch handles records one at a time under a shared wall-clock
// budget. A record that fails or that the budget cuts off is left on the
// queue for redelivery.
func (c *Consumer) processBatch(ctx context.Context, messages []types.Message) {
	batchCtx, cancel := context.WithTimeout(ctx, c.cfg.BatchTimeout)
	defer cancel()

	for _, msg := range messages {
		log := c.logger.WithFields(logrus.Fields{
			"message_id": aws.ToString(msg.MessageId),
			"record_id":  uuid.NewString(),
		})

		if batchCtx.Err() != nil {
			log.Warn("batch budget exhausted, leaving record for redelivery")
			continue
		}

		if err := c.handler.HandleRecord(batchCtx, []byte(aws.ToString(msg.Body))); err != nil {
			log.WithError(err).Error("record processing failed, leaving for redelivery")
			continue
		}

		// Delete uses the outer context so a processed record is not
		// redelivered just because the batch budget expired afterwards.
		if _, err := c.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
			QueueUrl:      aws.String(c.cfg.QueueURL),
			ReceiptHandle: msg.ReceiptHandle,
		}); err != nil {
			log.WithError(err).Error("failed to delete processed record, duplicate delivery possible")
			continue
		}

		log.Info("record processed")
	}
}
