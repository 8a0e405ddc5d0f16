package service

import (
	"context"
	"encoding/json"

	"triage-assist-be/internal/dto"
	"triage-assist-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	ocrService IOcrService
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	ocrService IOcrService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		ocrService: ocrService,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks. OCR has no retry: a failed file stays failed.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.ProcessOcrMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("OCR_CONSUMER", "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	cs.logger.Info("OCR_CONSUMER", "Processing report", map[string]interface{}{
		"file_id": payload.FileId.String(),
	})

	if _, err := cs.ocrService.Process(ctx, payload.FileId); err != nil {
		cs.logger.Warn("OCR_CONSUMER", "Report processing failed", map[string]interface{}{
			"file_id": payload.FileId.String(),
			"error":   err.Error(),
		})
	}
}
