// Package usecase implements the dashboard layout and its event dispatch table.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"stock_dashboard/internal/feature/dashboard/domain/entity"
	"stock_dashboard/internal/shared/apperr"
)

// ErrUnknownEvent は登録されていないイベント名です。
var ErrUnknownEvent = errors.New("unknown event")

// Action はイベント名に対して登録されるハンドラーです。
type Action struct {
	Event    string
	Requires []string
	Target   entity.Container
	Run      func(ctx context.Context, in entity.Inputs) (entity.Outcome, error)
}

// Dispatcher はイベント名からActionを引いて実行します。
type Dispatcher struct {
	actions map[string]Action
}

// NewDispatcher は与えられたActionを登録します。同名のイベントは後勝ちです。
func NewDispatcher(actions ...Action) *Dispatcher {
	d := &Dispatcher{actions: make(map[string]Action, len(actions))}
	for _, a := range actions {
		d.actions[a.Event] = a
	}
	return d
}

// Dispatch は event を実行します。
//   - 必須入力が空ならRunを呼ばずにSkippedを返す
//   - ErrInvalidArgumentはSkippedとして扱う
//   - ErrDataUnavailableは対象領域へのメッセージになる
//   - それ以外のエラーはTarget付きのOutcomeと共に返す
func (d *Dispatcher) Dispatch(ctx context.Context, event string, in entity.Inputs) (entity.Outcome, error) {
	a, ok := d.actions[event]
	if !ok {
		return entity.Outcome{}, fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	for _, f := range a.Requires {
		if strings.TrimSpace(in[f]) == "" {
			return entity.Outcome{Skipped: true, Target: a.Target}, nil
		}
	}

	out, err := a.Run(ctx, in)
	switch {
	case err == nil:
		out.Target = a.Target
		return out, nil
	case errors.Is(err, apperr.ErrInvalidArgument):
		slog.Debug("event skipped", "event", event, "reason", err)
		return entity.Outcome{Skipped: true, Target: a.Target}, nil
	case errors.Is(err, apperr.ErrDataUnavailable):
		return entity.Outcome{Target: a.Target, Message: unavailableMessage(in[entity.FieldSymbol])}, nil
	default:
		return entity.Outcome{Target: a.Target}, fmt.Errorf("event %s: %w", event, err)
	}
}

// Events は登録済みのイベント名を名前順で返します。
func (d *Dispatcher) Events() []string {
	out := make([]string, 0, len(d.actions))
	for name := range d.actions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func unavailableMessage(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "No data available."
	}
	return fmt.Sprintf("No data available for %s.", symbol)
}
