package app

import (
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-fleet-dispatch/internal/config"
	"service-fleet-dispatch/internal/domain"
	"service-fleet-dispatch/internal/logx"
	"service-fleet-dispatch/internal/metrics"
	"service-fleet-dispatch/internal/notify"
	"service-fleet-dispatch/internal/repository"
)

var (
	newKafkaDispatcher = notify.NewKafkaDispatcher
	connectMQTT        = notify.NewMQTTClient
)

const mqttPublishTimeout = 5 * time.Second

func newSMSDispatcher(cfg *config.Config) (*notify.KafkaDispatcher, error) {
	return newKafkaDispatcher(cfg.Kafka.Brokers, cfg.Kafka.SMSTopic)
}

// newMQTTClient returns nil when no broker is configured.
func newMQTTClient(cfg *config.Config, logger logx.Logger) (mqtt.Client, error) {
	if cfg.MQTT.Broker == "" {
		return nil, nil
	}
	return connectMQTT(cfg.MQTT.Broker, cfg.MQTT.ClientID, func(o *mqtt.ClientOptions) {
		o.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			logger.Warn("mqtt connection lost", logx.Err(err))
		})
	})
}

type dispatcherIn struct {
	dig.In
	Config    *config.Config
	Logger    logx.Logger
	SMS       *notify.KafkaDispatcher
	MQTT      mqtt.Client
	Retries   prometheus.Counter `name:"dispatch_retries_total"`
	Throttled prometheus.Counter `name:"dispatch_throttled_total"`
}

// newDispatcher builds router -> per-channel rate limit -> retry. Channels without
// a configured backend fall back to the log.
func newDispatcher(in dispatcherIn) notify.Dispatcher {
	routes := make(map[domain.NotificationChannel]notify.Dispatcher, 2)
	if in.SMS != nil {
		routes[domain.ChannelSMS] = in.SMS
	}
	if in.MQTT != nil {
		routes[domain.ChannelMessagingApp] = notify.NewMQTTDispatcher(in.MQTT, in.Config.MQTT.TopicPrefix, mqttPublishTimeout)
	}
	if len(routes) < 2 {
		in.Logger.Warn("notification backends partially configured, using log fallback",
			logx.Bool("sms", in.SMS != nil),
			logx.Bool("messaging_app", in.MQTT != nil),
		)
	}

	dc := in.Config.Dispatch
	var d notify.Dispatcher = notify.NewRouter(routes, notify.NewLogDispatcher(in.Logger))
	d = notify.NewRateLimited(d, dc.Rate, dc.Burst, in.Throttled, domain.ChannelSMS, domain.ChannelMessagingApp)
	return notify.NewRetrying(d, in.Logger, in.Retries, notify.RetryConfig{
		MaxAttempts: dc.MaxAttempts,
		BaseDelay:   dc.BaseDelay,
		MaxDelay:    dc.MaxDelay,
	})
}

func newOutbox(cfg *config.Config, d notify.Dispatcher, store *repository.NotificationRepo,
	logger logx.Logger, m *metrics.Offers) *notify.Outbox {
	return notify.NewOutbox(d, store, cfg.Dispatch.Concurrency, logger, m)
}

// closeNotify releases the broker connections behind the dispatcher.
func closeNotify(logger logx.Logger, sms *notify.KafkaDispatcher, client mqtt.Client) {
	if err := sms.Close(); err != nil {
		logger.Error("kafka producer close error", logx.Err(err))
	}
	if client != nil {
		client.Disconnect(250)
	}
}
