package launchdarkly

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/launchdarkly/go-server-sdk/v6/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/entity"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/flags"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/logger"
	mockcore "github.com/amirhossein-jamali/flag-logger/mocks/port/core"
)

func TestMinLevel(t *testing.T) {
	assert.Equal(t, ldlog.Debug, MinLevel(entity.SDKLogLevelDebug))
	assert.Equal(t, ldlog.Info, MinLevel(entity.SDKLogLevelInfo))
	assert.Equal(t, ldlog.Warn, MinLevel(entity.SDKLogLevelWarn))
	assert.Equal(t, ldlog.Error, MinLevel(entity.SDKLogLevelError))
	assert.Equal(t, ldlog.Info, MinLevel("unknown"))
}

func TestBuildContext(t *testing.T) {
	t.Run("should carry kind and attributes", func(t *testing.T) {
		c, err := BuildContext(flags.EvaluationContext{
			Kind:       "device",
			Key:        "device-1",
			Attributes: map[string]any{"os": "linux"},
		})

		require.NoError(t, err)
		assert.Equal(t, "device", string(c.Kind()))
		assert.Equal(t, "device-1", c.Key())
		assert.Equal(t, "linux", c.GetValue("os").StringValue())
	})

	t.Run("should default to user kind", func(t *testing.T) {
		c, err := BuildContext(flags.EvaluationContext{Key: "u"})

		require.NoError(t, err)
		assert.Equal(t, "user", string(c.Kind()))
	})

	t.Run("should reject an empty key", func(t *testing.T) {
		_, err := BuildContext(flags.EvaluationContext{Kind: "user"})
		assert.Error(t, err)
	})
}

func TestLoggers_RouteByLevel(t *testing.T) {
	log := mockcore.NewMockLogger(t)
	contains := func(s string) any {
		return mock.MatchedBy(func(msg string) bool { return strings.Contains(msg, s) })
	}
	log.EXPECT().Warn(contains("stream interrupted"), mock.Anything).Once()
	log.EXPECT().Error(contains("bad key"), mock.Anything).Once()

	loggers := Loggers(log)
	loggers.Warn("stream interrupted")
	loggers.Errorf("bad %s", "key")
	loggers.Debug("hidden by default min level")
}

func TestOfflineClient(t *testing.T) {
	client, err := NewClient(context.Background(), Config{Offline: true}, flags.ClientOptions{
		ClientID: "sdk-test",
		Context:  flags.EvaluationContext{Key: "user-1"},
		LogLevel: entity.SDKLogLevelError,
	}, logger.NewNoopLogger())
	require.NoError(t, err)

	assert.Equal(t, "fallback", client.Evaluate("missing-flag", "fallback"))

	unsubscribe := client.Subscribe(flags.ChangeEvent("sdk-log-level"), func(any) {})
	assert.NotPanics(t, unsubscribe)
	assert.NotPanics(t, unsubscribe)

	noop := client.Subscribe("not-a-change-event", func(any) {})
	assert.NotPanics(t, noop)

	assert.NoError(t, client.Close(context.Background()))
}

func TestNewClient_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(ctx, Config{Offline: true}, flags.ClientOptions{
		Context: flags.EvaluationContext{Key: "user-1"},
	}, logger.NewNoopLogger())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestListener_StopsForwardingAfterStop(t *testing.T) {
	ch := make(chan interfaces.FlagValueChangeEvent, 3)
	var got []any
	seen := make(chan struct{}, 3)
	l := &listener{callback: func(v any) {
		got = append(got, v)
		seen <- struct{}{}
	}}

	ch <- interfaces.FlagValueChangeEvent{Key: "sdk-log-level", NewValue: ldvalue.String("warn")}
	done := make(chan struct{})
	go func() {
		l.forward(ch)
		close(done)
	}()
	select {
	case <-seen:
	case <-time.After(time.Second):
		t.Fatal("first event was not delivered")
	}

	l.stop()
	ch <- interfaces.FlagValueChangeEvent{Key: "sdk-log-level", NewValue: ldvalue.String("debug")}
	ch <- interfaces.FlagValueChangeEvent{Key: "sdk-log-level", NewValue: ldvalue.String("error")}
	close(ch)
	<-done

	assert.Equal(t, []any{"warn"}, got)
}
