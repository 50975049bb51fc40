package plume

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Publisher publishes computed plume-extent collections to MQTT. One retained
// message per (ensemble, attribute) pair keeps the latest contour set
// available to late subscribers.
type Publisher struct {
	client mqtt.Client
	prefix string
	qos    byte
	retain bool

	mu        sync.RWMutex
	published map[string]time.Time
}

// NewPublisher creates a publisher on an existing MQTT client. A nil client
// disables publishing (used by tests and non-service modes).
func NewPublisher(client mqtt.Client, prefix string) *Publisher {
	if prefix == "" {
		prefix = "plumetrace"
	}
	return &Publisher{
		client:    client,
		prefix:    prefix,
		qos:       0,
		retain:    true,
		published: make(map[string]time.Time),
	}
}

// NewMQTTClient connects a paho client using the given settings.
func NewMQTTClient(cfg MQTTConfig) (mqtt.Client, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("mqtt.broker is required")
	}

	opts := mqtt.NewClientOptions().AddBroker(cfg.Broker)
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "plumetrace"
	}
	opts.SetClientID(clientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("timeout connecting to MQTT broker %s", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connecting to MQTT broker %s: %w", cfg.Broker, err)
	}
	return client, nil
}

// PublishCollection publishes a feature collection for one ensemble and
// attribute. Topic layout: {prefix}/{ensemble}/{attribute}/contours.
func (p *Publisher) PublishCollection(ensemble string, attribute MapAttribute, fc *FeatureCollection) error {
	if p.client == nil || !p.client.IsConnected() {
		return fmt.Errorf("MQTT client not connected")
	}

	payload, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("marshaling feature collection: %w", err)
	}

	naming := string(attribute)
	if info, ok := attribute.Info(); ok && info.FileNaming != "" {
		naming = info.FileNaming
	}
	topic := fmt.Sprintf("%s/%s/%s/contours", p.prefix, ensemble, naming)

	token := p.client.Publish(topic, p.qos, p.retain, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		log.Printf("[PUBLISH] error publishing contours to %s: %v", topic, err)
		return err
	}

	p.mu.Lock()
	p.published[topic] = time.Now()
	p.mu.Unlock()

	return nil
}

// PublishExtentSeries publishes the plume-extent-over-time series for one
// ensemble. Topic layout: {prefix}/{ensemble}/extent.
func (p *Publisher) PublishExtentSeries(ensemble string, series []ExtentPoint) error {
	if p.client == nil || !p.client.IsConnected() {
		return fmt.Errorf("MQTT client not connected")
	}

	payload, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("marshaling extent series: %w", err)
	}

	topic := fmt.Sprintf("%s/%s/extent", p.prefix, ensemble)
	token := p.client.Publish(topic, p.qos, p.retain, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		log.Printf("[PUBLISH] error publishing extent series to %s: %v", topic, err)
		return err
	}

	p.mu.Lock()
	p.published[topic] = time.Now()
	p.mu.Unlock()

	return nil
}

// LastPublished returns when a topic was last published, or false if never.
func (p *Publisher) LastPublished(topic string) (time.Time, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	t, ok := p.published[topic]
	return t, ok
}
