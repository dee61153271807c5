package webhook

import (
	"context"
	"strings"
)

type actionFunc func(context.Context, Event) error

type actionFactory struct {
	byType map[string]actionFunc
}

func newActionFactory(onCreated, onStatusChanged, onDelivered, onCancelled actionFunc) *actionFactory {
	return &actionFactory{
		byType: map[string]actionFunc{
			EventDeliveryCreated:       onCreated,
			EventDeliveryStatusChanged: onStatusChanged,
			EventDeliveryDelivered:     onDelivered,
			EventDeliveryCancelled:     onCancelled,
		},
	}
}

func (f *actionFactory) get(eventType string) (actionFunc, bool) {
	eventType = strings.ToLower(strings.TrimSpace(eventType))
	fn, ok := f.byType[eventType]
	return fn, ok
}
