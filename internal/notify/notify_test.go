package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-fleet-dispatch/internal/domain"
	"service-fleet-dispatch/internal/notify"
	testlog "service-fleet-dispatch/internal/testutil"
)

type counterStub struct{ n int64 }

func (c *counterStub) Inc()         { atomic.AddInt64(&c.n, 1) }
func (c *counterStub) Count() int64 { return atomic.LoadInt64(&c.n) }

func smsMessage() notify.Message {
	offerID := uuid.New()
	return notify.Message{
		ID:        uuid.New(),
		BookingID: uuid.New(),
		OfferID:   &offerID,
		Kind:      domain.KindOffer,
		Channel:   domain.ChannelSMS,
		Recipient: "0901234567",
		Body:      "New trip offer",
	}
}

func TestRouter_RoutesByChannel(t *testing.T) {
	t.Parallel()

	var sms, app int32
	r := notify.NewRouter(map[domain.NotificationChannel]notify.Dispatcher{
		domain.ChannelSMS: notify.DispatcherFunc(func(context.Context, notify.Message) error {
			atomic.AddInt32(&sms, 1)
			return nil
		}),
		domain.ChannelMessagingApp: notify.DispatcherFunc(func(context.Context, notify.Message) error {
			atomic.AddInt32(&app, 1)
			return nil
		}),
	}, nil)

	msg := smsMessage()
	require.NoError(t, r.Dispatch(context.Background(), msg))
	msg.Channel = domain.ChannelMessagingApp
	require.NoError(t, r.Dispatch(context.Background(), msg))

	assert.EqualValues(t, 1, sms)
	assert.EqualValues(t, 1, app)
}

func TestRouter_UnknownChannel(t *testing.T) {
	t.Parallel()

	r := notify.NewRouter(nil, nil)
	msg := smsMessage()
	msg.Channel = "pigeon"

	err := r.Dispatch(context.Background(), msg)
	require.ErrorIs(t, err, notify.ErrUnsupportedChannel)
	assert.True(t, notify.IsPermanent(err))
}

func TestRouter_FallsBack(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	r := notify.NewRouter(map[domain.NotificationChannel]notify.Dispatcher{domain.ChannelSMS: nil},
		notify.NewLogDispatcher(rec.Logger()))

	require.NoError(t, r.Dispatch(context.Background(), smsMessage()))
	assert.True(t, rec.HasMsg("notification not sent: channel has no backend"))
}

func TestLogDispatcher_EmptyRecipient(t *testing.T) {
	t.Parallel()

	msg := smsMessage()
	msg.Recipient = ""
	err := notify.NewLogDispatcher(nil).Dispatch(context.Background(), msg)
	require.ErrorIs(t, err, notify.ErrEmptyRecipient)
}

func TestRetrying_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	var calls int32
	next := notify.DispatcherFunc(func(context.Context, notify.Message) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("gateway unavailable")
		}
		return nil
	})
	ctr := &counterStub{}

	r := notify.NewRetrying(next, rec.Logger(), ctr, notify.RetryConfig{MaxAttempts: 5})
	require.NoError(t, r.Dispatch(context.Background(), smsMessage()))

	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
	assert.EqualValues(t, 2, ctr.Count())
	assert.True(t, rec.HasMsg("notification dispatch retry"))
}

func TestRetrying_StopsOnPermanent(t *testing.T) {
	t.Parallel()

	var calls int32
	next := notify.DispatcherFunc(func(context.Context, notify.Message) error {
		atomic.AddInt32(&calls, 1)
		return notify.Permanent(notify.ErrEmptyRecipient)
	})

	r := notify.NewRetrying(next, nil, nil, notify.RetryConfig{MaxAttempts: 5})
	err := r.Dispatch(context.Background(), smsMessage())
	require.ErrorIs(t, err, notify.ErrEmptyRecipient)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestRetrying_GivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("down")
	var calls int32
	next := notify.DispatcherFunc(func(context.Context, notify.Message) error {
		atomic.AddInt32(&calls, 1)
		return wantErr
	})

	r := notify.NewRetrying(next, nil, nil, notify.RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond})
	require.ErrorIs(t, r.Dispatch(context.Background(), smsMessage()), wantErr)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestRetrying_StopsWhenContextDone(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var calls int32
	next := notify.DispatcherFunc(func(context.Context, notify.Message) error {
		atomic.AddInt32(&calls, 1)
		cancel()
		return errors.New("down")
	})

	r := notify.NewRetrying(next, nil, nil, notify.RetryConfig{MaxAttempts: 5, BaseDelay: time.Hour, MaxDelay: time.Hour})
	require.Error(t, r.Dispatch(ctx, smsMessage()))
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestNewRetrying_NilNext(t *testing.T) {
	t.Parallel()
	assert.Nil(t, notify.NewRetrying(nil, nil, nil, notify.RetryConfig{}))
}

func TestRateLimited_ThrottlesPerChannel(t *testing.T) {
	t.Parallel()

	var sent int32
	next := notify.DispatcherFunc(func(context.Context, notify.Message) error {
		atomic.AddInt32(&sent, 1)
		return nil
	})
	throttled := &counterStub{}
	d := notify.NewRateLimited(next, 0.001, 1, throttled, domain.ChannelSMS)

	require.NoError(t, d.Dispatch(context.Background(), smsMessage()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.Error(t, d.Dispatch(ctx, smsMessage()))
	assert.EqualValues(t, 1, throttled.Count())

	app := smsMessage()
	app.Channel = domain.ChannelMessagingApp
	require.NoError(t, d.Dispatch(context.Background(), app), "unlimited channel")
	assert.EqualValues(t, 2, atomic.LoadInt32(&sent))
}

func TestRateLimited_DisabledReturnsNext(t *testing.T) {
	t.Parallel()

	next := notify.NewLogDispatcher(nil)
	assert.Same(t, next, notify.NewRateLimited(next, 0, 0, nil).(*notify.LogDispatcher))
}

func TestKafkaDispatcher_PublishesPayload(t *testing.T) {
	t.Parallel()

	producer := mocks.NewSyncProducer(t, nil)
	msg := smsMessage()

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got map[string]any
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got["to"] != msg.Recipient || got["body"] != msg.Body || got["offer_id"] != msg.OfferID.String() {
			return errors.New("unexpected payload")
		}
		return nil
	})

	d := notify.NewKafkaDispatcherWithProducer(producer, "notifications.sms")
	require.NoError(t, d.Dispatch(context.Background(), msg))
	require.NoError(t, d.Close())
}

func TestKafkaDispatcher_Errors(t *testing.T) {
	t.Parallel()

	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	producer.ExpectSendMessageAndFail(sarama.ErrMessageSizeTooLarge)

	d := notify.NewKafkaDispatcherWithProducer(producer, "notifications.sms")

	err := d.Dispatch(context.Background(), smsMessage())
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	assert.False(t, notify.IsPermanent(err))

	err = d.Dispatch(context.Background(), smsMessage())
	require.ErrorIs(t, err, sarama.ErrMessageSizeTooLarge)
	assert.True(t, notify.IsPermanent(err))

	empty := smsMessage()
	empty.Recipient = " "
	assert.True(t, notify.IsPermanent(d.Dispatch(context.Background(), empty)))

	require.NoError(t, d.Close())
}

func TestNewKafkaDispatcher_SkipsWithoutConfig(t *testing.T) {
	t.Parallel()

	d, err := notify.NewKafkaDispatcher(nil, "topic")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = notify.NewKafkaDispatcher([]string{"b:9092"}, " ")
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.NoError(t, d.Close())
}

type fakeToken struct {
	done chan struct{}
	err  error
}

func newFakeToken(err error, complete bool) *fakeToken {
	t := &fakeToken{done: make(chan struct{}), err: err}
	if complete {
		close(t.done)
	}
	return t
}

func (t *fakeToken) Wait() bool                     { <-t.done; return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}          { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

type fakePublisher struct {
	topic   string
	payload []byte
	token   mqtt.Token
}

func (p *fakePublisher) Publish(topic string, _ byte, _ bool, payload interface{}) mqtt.Token {
	p.topic = topic
	p.payload, _ = payload.([]byte)
	return p.token
}

func TestMQTTDispatcher_PublishesToHandleTopic(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{token: newFakeToken(nil, true)}
	d := notify.NewMQTTDispatcher(pub, "ctv/", time.Second)

	msg := smsMessage()
	msg.Channel = domain.ChannelMessagingApp
	msg.Recipient = "@driver_an"

	require.NoError(t, d.Dispatch(context.Background(), msg))
	assert.Equal(t, "ctv/driver_an/offers", pub.topic)

	var got map[string]any
	require.NoError(t, json.Unmarshal(pub.payload, &got))
	assert.Equal(t, msg.Body, got["text"])
	assert.Equal(t, msg.BookingID.String(), got["booking_id"])
}

func TestMQTTDispatcher_Failures(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("not connected")
	d := notify.NewMQTTDispatcher(&fakePublisher{token: newFakeToken(wantErr, true)}, "ctv", time.Second)
	msg := smsMessage()
	msg.Recipient = "driver"
	require.ErrorIs(t, d.Dispatch(context.Background(), msg), wantErr)

	slow := notify.NewMQTTDispatcher(&fakePublisher{token: newFakeToken(nil, false)}, "ctv", 10*time.Millisecond)
	require.ErrorContains(t, slow.Dispatch(context.Background(), msg), "timeout")

	msg.Recipient = "bad/handle"
	assert.True(t, notify.IsPermanent(d.Dispatch(context.Background(), msg)))
}

func TestMQTTDispatcher_Topic(t *testing.T) {
	t.Parallel()

	d := notify.NewMQTTDispatcher(nil, "", 0)
	topic, err := d.Topic("driver")
	require.NoError(t, err)
	assert.Equal(t, "driver/offers", topic)

	_, err = d.Topic("@")
	require.ErrorIs(t, err, notify.ErrEmptyRecipient)
}

func TestFromNotification(t *testing.T) {
	t.Parallel()

	n := domain.Notification{
		ID: uuid.New(), BookingID: uuid.New(), Kind: domain.KindManagerAlert,
		Channel: domain.ChannelSMS, Recipient: "0900000000", Body: "alert",
	}
	msg := notify.FromNotification(n)
	assert.Equal(t, n.ID, msg.ID)
	assert.Equal(t, n.Channel, msg.Channel)
	assert.Nil(t, msg.OfferID)
}
