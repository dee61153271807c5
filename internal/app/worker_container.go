package app

import (
	"context"
	"fmt"

	"go.uber.org/dig"

	"storefront-drive/internal/config"
	"storefront-drive/internal/logx"
	"storefront-drive/internal/service/checkout"
	"storefront-drive/internal/service/orders"
	"storefront-drive/internal/transport/kafka"
)

// MustBuildWorker builds and returns the order-events worker container
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerKafka(container); err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}
	return container, nil
}

// MustBuildWorkerContainer builds and returns the order-events worker container
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func registerKafka(container *dig.Container) error {
	return provideAll(container,
		func(svc *checkout.Service) *orders.Processor {
			return orders.NewProcessor(svc)
		},
		func(logger logx.Logger, cfg *config.Config, p *orders.Processor) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, p.Handle)
		},
	)
}
