package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/idanlevi/redalert-monitor/internal/domain/alert"
)

const (
	// publishQoS delivers notifications at least once to the broker.
	publishQoS = 1

	// disconnectQuiesce is how long Close waits for in-flight messages.
	disconnectQuiesce = 250 * time.Millisecond

	// DefaultTimeout bounds connect and publish operations.
	DefaultTimeout = 5 * time.Second
)

var (
	// errBrokerRequired is returned when no broker address is provided.
	errBrokerRequired = errors.New("broker address must be provided")
	// errTimedOut is returned when a broker operation exceeds the timeout.
	errTimedOut = errors.New("operation timed out")
)

// Publisher delivers notification events to an MQTT broker. Events are
// published retained at QoS 1 so late subscribers see the latest state.
type Publisher struct {
	// client is the underlying paho MQTT client.
	client mqtt.Client
	// timeout bounds individual broker operations.
	timeout time.Duration
}

// Option configures publisher behaviour.
type Option func(*options)

// options collects connection settings before the client is built.
type options struct {
	clientID string
	username string
	password string
	timeout  time.Duration
}

// WithClientID sets the MQTT client identifier.
func WithClientID(clientID string) Option {
	return func(o *options) {
		if clientID != "" {
			o.clientID = clientID
		}
	}
}

// WithCredentials sets the broker username and password.
// Empty values leave the connection anonymous.
func WithCredentials(username, password string) Option {
	return func(o *options) {
		o.username = username
		o.password = password
	}
}

// WithTimeout sets the timeout for connect and publish operations.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// Connect establishes a connection to the MQTT broker.
// Note: this uses plain TCP; run the broker on a trusted network or put
// TLS termination in front of it.
func Connect(ctx context.Context, broker string, port int, opts ...Option) (*Publisher, error) {
	if broker == "" {
		return nil, errBrokerRequired
	}

	o := &options{
		clientID: "redalert-monitor",
		timeout:  DefaultTimeout,
	}

	for _, opt := range opts {
		opt(o)
	}

	clientOptions := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", broker, port)).
		SetClientID(o.clientID).
		SetConnectTimeout(o.timeout).
		SetAutoReconnect(true)

	if o.username != "" {
		clientOptions.SetUsername(o.username)
		clientOptions.SetPassword(o.password)
	}

	client := mqtt.NewClient(clientOptions)

	if err := wait(ctx, client.Connect(), o.timeout); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &Publisher{
		client:  client,
		timeout: o.timeout,
	}, nil
}

// Close disconnects from the broker, allowing in-flight messages to drain.
func (p *Publisher) Close() {
	if p == nil || p.client == nil {
		return
	}

	p.client.Disconnect(uint(disconnectQuiesce.Milliseconds()))
}

// Publish sends a notification event to the given topic as JSON.
func (p *Publisher) Publish(ctx context.Context, topic string, event alert.Notification) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	token := p.client.Publish(topic, publishQoS, true, payload)
	if err = wait(ctx, token, p.timeout); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	return nil
}

// wait blocks until the token completes, the context is canceled or the
// timeout elapses.
func wait(ctx context.Context, token mqtt.Token, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return errTimedOut
	case <-token.Done():
		return token.Error()
	}
}
