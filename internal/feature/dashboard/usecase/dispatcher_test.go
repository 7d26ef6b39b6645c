package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_dashboard/internal/feature/dashboard/domain/entity"
	"stock_dashboard/internal/shared/apperr"
)

func TestDispatcher_Dispatch(t *testing.T) {
	t.Parallel()

	upstream := errors.New("twelvedata http 500")

	tests := []struct {
		name       string
		event      string
		inputs     entity.Inputs
		runErr     error
		wantCalled bool
		want       entity.Outcome
		wantErr    error
	}{
		{
			name:       "runs when required inputs are present",
			event:      "price",
			inputs:     entity.Inputs{entity.FieldSymbol: "aapl"},
			wantCalled: true,
			want:       entity.Outcome{Target: entity.ContainerGraphs, Message: "ran"},
		},
		{
			name:   "missing symbol skips without calling run",
			event:  "price",
			inputs: entity.Inputs{},
			want:   entity.Outcome{Skipped: true, Target: entity.ContainerGraphs},
		},
		{
			name:   "blank symbol skips",
			event:  "price",
			inputs: entity.Inputs{entity.FieldSymbol: "   "},
			want:   entity.Outcome{Skipped: true, Target: entity.ContainerGraphs},
		},
		{
			name:       "invalid argument is a silent skip",
			event:      "price",
			inputs:     entity.Inputs{entity.FieldSymbol: "AAPL"},
			runErr:     fmt.Errorf("%w: start date %q", apperr.ErrInvalidArgument, "x"),
			wantCalled: true,
			want:       entity.Outcome{Skipped: true, Target: entity.ContainerGraphs},
		},
		{
			name:       "data unavailable becomes a visible message",
			event:      "price",
			inputs:     entity.Inputs{entity.FieldSymbol: " zzzz "},
			runErr:     fmt.Errorf("get history: %w", apperr.ErrDataUnavailable),
			wantCalled: true,
			want:       entity.Outcome{Target: entity.ContainerGraphs, Message: "No data available for ZZZZ."},
		},
		{
			name:       "other errors propagate with target",
			event:      "price",
			inputs:     entity.Inputs{entity.FieldSymbol: "AAPL"},
			runErr:     upstream,
			wantCalled: true,
			want:       entity.Outcome{Target: entity.ContainerGraphs},
			wantErr:    upstream,
		},
		{
			name:    "unknown event",
			event:   "nope",
			inputs:  entity.Inputs{entity.FieldSymbol: "AAPL"},
			wantErr: ErrUnknownEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			d := NewDispatcher(Action{
				Event:    "price",
				Requires: []string{entity.FieldSymbol},
				Target:   entity.ContainerGraphs,
				Run: func(ctx context.Context, in entity.Inputs) (entity.Outcome, error) {
					called = true
					if tt.runErr != nil {
						return entity.Outcome{}, tt.runErr
					}
					return entity.Outcome{Message: "ran"}, nil
				},
			})

			got, err := d.Dispatch(context.Background(), tt.event, tt.inputs)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}

func TestDispatcher_Events(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(NewActions(Deps{})...)
	assert.Equal(t,
		[]string{entity.EventForecast, entity.EventIndicators, entity.EventStockPrice, entity.EventSubmit},
		d.Events())
}
