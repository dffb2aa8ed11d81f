package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testCommand struct {
	Name string
	bad  bool
}

func (c testCommand) Validate() error {
	if c.bad {
		return errors.New("bad command")
	}
	return nil
}

func TestCommandBusDispatch(t *testing.T) {
	cb := NewCommandBus()

	var handled bool
	err := cb.Register(testCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		handled = true
		assert.Equal(t, "do it", cmd.(testCommand).Name)
		return nil
	}))
	require.NoError(t, err)

	require.NoError(t, cb.Send(context.Background(), testCommand{Name: "do it"}))
	assert.True(t, handled)
}

func TestCommandBusValidatesBeforeDispatch(t *testing.T) {
	cb := NewCommandBus()

	var handled bool
	require.NoError(t, cb.Register(testCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		handled = true
		return nil
	})))

	err := cb.Send(context.Background(), testCommand{bad: true})
	assert.Error(t, err)
	assert.False(t, handled)
}

func TestCommandBusUnknownCommand(t *testing.T) {
	cb := NewCommandBus()
	err := cb.Send(context.Background(), testCommand{})
	assert.ErrorContains(t, err, "no handler registered")
}

func TestCommandBusDuplicateRegistration(t *testing.T) {
	cb := NewCommandBus()
	handler := CommandHandlerFunc(func(ctx context.Context, cmd Command) error { return nil })

	require.NoError(t, cb.Register(testCommand{}, handler))
	assert.Error(t, cb.Register(testCommand{}, handler))
}

func TestCommandBusDoesNotWrapHandlerErrors(t *testing.T) {
	cb := NewCommandBus()
	sentinel := errors.New("sentinel")

	require.NoError(t, cb.Register(testCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		return sentinel
	})))

	err := cb.Send(context.Background(), testCommand{})
	assert.ErrorIs(t, err, sentinel)
}

func TestLoggingMiddleware(t *testing.T) {
	pipeline := NewPipeline(LoggingMiddleware(zap.NewNop()))

	handler := pipeline.Execute(CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		return nil
	}))

	assert.NoError(t, handler.Handle(context.Background(), testCommand{}))
}
