package monitor

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTConfig configures the MQTT forwarder.
type MQTTConfig struct {
	Broker   string // e.g. tcp://localhost:1883
	ClientID string
	Topic    string // prefix; events go to <Topic>/<kind>
	QoS      byte
}

var errPublishTimeout = errors.New("mqtt publish timed out")

// publishTimeout bounds how long Publish waits for the broker.
const publishTimeout = 2 * time.Second

// MQTTSink publishes every event as JSON to <prefix>/<kind>.
type MQTTSink struct {
	client mqtt.Client
	prefix string
	qos    byte
}

// NewMQTTSink wraps an existing client, which may also be a test double.
func NewMQTTSink(client mqtt.Client, prefix string, qos byte) *MQTTSink {
	return &MQTTSink{client: client, prefix: prefix, qos: qos}
}

// ConnectMQTT connects to the broker and returns a sink publishing to it.
func ConnectMQTT(cfg MQTTConfig, logger *slog.Logger) (*MQTTSink, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			logger.Warn("mqtt connection lost", "broker", cfg.Broker, "error", err)
		})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect mqtt %s: %w", cfg.Broker, token.Error())
	}
	logger.Info("connected to MQTT broker", "broker", cfg.Broker, "topic", cfg.Topic)

	return NewMQTTSink(client, cfg.Topic, cfg.QoS), nil
}

// Topic returns the topic an event of kind is published on.
func (s *MQTTSink) Topic(kind string) string {
	return s.prefix + "/" + kind
}

func (s *MQTTSink) Publish(e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}

	token := s.client.Publish(s.Topic(e.Kind), s.qos, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return errPublishTimeout
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", s.Topic(e.Kind), err)
	}
	return nil
}

// Close disconnects from the broker, allowing pending publishes to finish.
func (s *MQTTSink) Close() {
	s.client.Disconnect(250)
}
