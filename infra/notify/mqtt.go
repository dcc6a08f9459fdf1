// Package notify forwards committed assignments to an MQTT topic so
// volunteer dashboards can react without polling the store.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/flightobs/flightwatch/core/roster"
	"github.com/flightobs/flightwatch/infra/logger"
)

// Config defines the connection parameters for the MQTT notifier.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "flightwatch-notify"
	}
	if c.Topic == "" {
		c.Topic = "flightwatch/assignments"
	}
}

// Validate checks mandatory fields when the notifier is enabled.
func (c Config) Validate() error {
	if c.Enabled && c.Broker == "" {
		return fmt.Errorf("broker is required")
	}
	return nil
}

// Notifier publishes assignment events.
type Notifier interface {
	Notify(ev roster.AssignmentEvent)
	Close()
}

// MQTTNotifier implements Notifier using Eclipse Paho.
type MQTTNotifier struct {
	cli   paho.Client
	topic string
	qos   byte
	log   logger.Logger
}

// NewMQTTNotifier connects to the broker and returns a ready notifier.
func NewMQTTNotifier(cfg Config) (*MQTTNotifier, error) {
	log := logger.New("notify")
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true)
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	c := paho.NewClient(opts)
	if token := c.Connect(); !token.WaitTimeout(5*time.Second) || token.Error() != nil {
		if token.Error() != nil {
			return nil, fmt.Errorf("mqtt connect: %w", token.Error())
		}
		return nil, fmt.Errorf("mqtt connect: timeout")
	}
	return &MQTTNotifier{cli: c, topic: cfg.Topic, qos: cfg.QoS, log: log}, nil
}

// Notify publishes the event as JSON. Best effort: failures are logged, not
// returned, so a flaky broker never blocks a commit.
func (n *MQTTNotifier) Notify(ev roster.AssignmentEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		n.log.Errorf("marshal event: %v", err)
		return
	}
	token := n.cli.Publish(n.topic, n.qos, false, payload)
	if !token.WaitTimeout(2*time.Second) || token.Error() != nil {
		n.log.Warnf("publish assignment for %s: %v", ev.Observer, token.Error())
	}
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() {
	n.cli.Disconnect(250)
}
