package responses

import (
	"context"
	"strings"
)

type actionFunc func(context.Context, Event) error

type actionFactory struct {
	byAction map[string]actionFunc
}

func newActionFactory(onConfirm, onReject actionFunc) *actionFactory {
	return &actionFactory{
		byAction: map[string]actionFunc{
			"confirm": onConfirm,
			"accept":  onConfirm,
			"yes":     onConfirm,
			"ok":      onConfirm,
			"reject":  onReject,
			"decline": onReject,
			"no":      onReject,
		},
	}
}

func (f *actionFactory) get(action string) (actionFunc, bool) {
	action = strings.ToLower(strings.TrimSpace(action))
	fn, ok := f.byAction[action]
	return fn, ok
}
