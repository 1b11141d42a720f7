package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"speedsense/models"
	"speedsense/utils"
)

// Publisher is the slice of mqtt.Client the publisher needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// LivePoint is the message published for each live refresh.
type LivePoint struct {
	SensorType string              `json:"sensor_type"`
	Window     int                 `json:"window"`
	Point      models.DisplayPoint `json:"point"`
}

// MQTTPublisher mirrors the newest live point of each stream to a broker.
// Refresh is called on the main queue so it never waits for the broker.
type MQTTPublisher struct {
	client Publisher
	prefix string
	log    *utils.Logger
}

func NewMQTTPublisher(client Publisher, topicPrefix string) *MQTTPublisher {
	return &MQTTPublisher{
		client: client,
		prefix: topicPrefix,
		log:    utils.L().Named("telemetry"),
	}
}

// Connect dials the configured broker.
func Connect(cfg utils.TelemetryConfig) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connect to broker %s: timed out", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker %s: %w", cfg.Broker, err)
	}
	utils.L().Info("telemetry connected  (broker=%s, client_id=%s)", cfg.Broker, cfg.ClientID)
	return client, nil
}

// Topic returns the topic a stream is published on.
func (p *MQTTPublisher) Topic(kind models.SensorKind) string {
	return p.prefix + "/" + kind.String()
}

func (p *MQTTPublisher) Refresh(kind models.SensorKind, window []models.DisplayPoint) {
	if len(window) == 0 {
		return
	}
	payload, err := json.Marshal(LivePoint{
		SensorType: kind.String(),
		Window:     len(window),
		Point:      window[len(window)-1],
	})
	if err != nil {
		p.log.Warn("%s marshal: %v", kind, err)
		return
	}

	topic := p.Topic(kind)
	token := p.client.Publish(topic, 0, false, payload)
	go func() {
		<-token.Done()
		if err := token.Error(); err != nil {
			p.log.Warn("publish %s: %v", topic, err)
		}
	}()
}
