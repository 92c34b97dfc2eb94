package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "fleet_db",
}

var defaultOffer = Offer{
	TTL:           30 * time.Minute,
	PoolCap:       20,
	SweepInterval: time.Minute,
}

var defaultDispatch = Dispatch{
	MaxAttempts: 3,
	BaseDelay:   200 * time.Millisecond,
	MaxDelay:    2 * time.Second,
	Rate:        5,
	Burst:       10,
	Concurrency: 8,
}

var defaultKafka = Kafka{
	SMSTopic:       "notifications.sms",
	ResponsesTopic: "offers.responses",
	GroupID:        "fleet-dispatch-worker",
}

var defaultMQTT = MQTT{
	ClientID:    "fleet-dispatch",
	TopicPrefix: "ctv",
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       10,
	Burst:      20,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultOffer returns the default offer lifecycle settings.
func DefaultOffer() Offer {
	return defaultOffer
}

// DefaultDispatch returns the default notification dispatch settings.
func DefaultDispatch() Dispatch {
	return defaultDispatch
}

// DefaultKafka returns the default Kafka settings (disabled until brokers are set).
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultMQTT returns the default MQTT settings (disabled until a broker is set).
func DefaultMQTT() MQTT {
	return defaultMQTT
}

// DefaultRateLimit returns the default inbound rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
