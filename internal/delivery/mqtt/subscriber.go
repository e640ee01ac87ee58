// Package mqtt is the GPS feed delivery: position fixes and GPS failures
// published by devices on {topicPrefix}/{sessionID}/position are applied to
// navigation sessions in arrival order.
package mqtt

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"saferoute/config"
	"saferoute/internal/delivery"
	"saferoute/internal/errors"
	"saferoute/internal/geo"
	"saferoute/internal/usecase"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	positionSuffix      = "position"
	subscribeTimeout    = 5 * time.Second
	handleTimeout       = 5 * time.Second
	disconnectQuiesceMs = 250
)

// PositionMessage is the payload of a position topic. A non-empty Error
// reports a GPS failure instead of a fix.
type PositionMessage struct {
	Lat   *float64 `json:"lat,omitempty"`
	Lon   *float64 `json:"lon,omitempty"`
	Error string   `json:"error,omitempty"`
}

// SubscriberParams holds dependencies for the GPS feed, injected by Fx.
type SubscriberParams struct {
	fx.In

	Lc           fx.Lifecycle
	Config       *config.Config
	NavigationUC usecase.NavigationUsecase
	Logger       *slog.Logger
}

type subscriber struct {
	cfg          *config.MQTTConfig
	client       paho.Client
	navigationUC usecase.NavigationUsecase
	logger       *slog.Logger

	done     chan struct{}
	stopOnce sync.Once
}

// NewSubscriber returns the MQTT GPS feed. When MQTT is disabled the
// returned delivery serves nothing.
func NewSubscriber(params SubscriberParams) (delivery.Delivery, error) {
	logger := params.Logger.With(slog.String("component", "mqtt"))

	cfg := params.Config.MQTT
	if cfg == nil || !cfg.Enabled {
		return disabled{logger: logger}, nil
	}
	if strings.TrimSpace(cfg.Broker) == "" {
		return nil, errors.New("mqtt is enabled but no broker is configured")
	}

	s := newSubscriber(cfg, nil, params.NavigationUC, logger)
	s.client = paho.NewClient(s.clientOptions())

	params.Lc.Append(fx.Hook{
		OnStop: s.stop,
	})

	return s, nil
}

func newSubscriber(cfg *config.MQTTConfig, client paho.Client, navigationUC usecase.NavigationUsecase, logger *slog.Logger) *subscriber {
	return &subscriber{
		cfg:          cfg,
		client:       client,
		navigationUC: navigationUC,
		logger:       logger,
		done:         make(chan struct{}),
	}
}

func (s *subscriber) clientOptions() *paho.ClientOptions {
	opts := paho.NewClientOptions()
	opts.AddBroker(s.cfg.Broker)
	opts.SetClientID(s.cfg.ClientID)
	if s.cfg.Username != "" {
		opts.SetUsername(s.cfg.Username)
		opts.SetPassword(s.cfg.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetMaxReconnectInterval(time.Minute)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	// Fixes of one session must reach it in the order they were published.
	opts.SetOrderMatters(true)

	opts.SetOnConnectHandler(s.onConnect)
	opts.SetConnectionLostHandler(s.onConnectionLost)

	return opts
}

// topicFilter matches the position topic of every session.
func (s *subscriber) topicFilter() string {
	return strings.TrimSuffix(s.cfg.TopicPrefix, "/") + "/+/" + positionSuffix
}

// Serve connects to the broker and blocks until the subscriber is stopped.
// Connecting retries in the background, so a broker that is down at start
// does not fail the process.
func (s *subscriber) Serve(ctx context.Context) error {
	s.logger.Info("Starting MQTT GPS feed",
		slog.String("broker", s.cfg.Broker),
		slog.String("topic", s.topicFilter()),
	)

	token := s.client.Connect()
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return errors.Wrap(err, "failed to connect to mqtt broker")
		}
	case <-s.done:
		return nil
	case <-ctx.Done():
		return nil
	}

	select {
	case <-s.done:
	case <-ctx.Done():
	}

	return nil
}

func (s *subscriber) stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		s.logger.Info("Shutting down MQTT GPS feed")
		s.client.Disconnect(disconnectQuiesceMs)
		close(s.done)
	})

	return nil
}

func (s *subscriber) onConnect(client paho.Client) {
	topic := s.topicFilter()
	token := client.Subscribe(topic, s.cfg.QoS, s.handleMessage)
	if !token.WaitTimeout(subscribeTimeout) {
		s.logger.Error("MQTT subscribe timed out", slog.String("topic", topic))

		return
	}
	if err := token.Error(); err != nil {
		s.logger.Error("MQTT subscribe failed", slog.String("topic", topic), slog.Any("error", err))

		return
	}

	s.logger.Info("MQTT connected and subscribed", slog.String("topic", topic))
}

func (s *subscriber) onConnectionLost(_ paho.Client, err error) {
	s.logger.Warn("MQTT connection lost, reconnecting", slog.Any("error", err))
}

// handleMessage applies one position message. Bad messages are logged and
// dropped; there is nobody to answer.
func (s *subscriber) handleMessage(_ paho.Client, msg paho.Message) {
	logger := s.logger.With(slog.String("topic", msg.Topic()))

	sessionID, ok := s.sessionID(msg.Topic())
	if !ok {
		logger.Warn("Ignoring message on unexpected topic")

		return
	}
	logger = logger.With(slog.String("session_id", sessionID))

	var payload PositionMessage
	if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
		logger.Warn("Ignoring malformed position message", slog.Any("error", err))

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	var err error
	switch {
	case payload.Error != "":
		_, err = s.navigationUC.ReportGPSError(ctx, sessionID, payload.Error)
	case payload.Lat != nil && payload.Lon != nil:
		_, err = s.navigationUC.UpdatePosition(ctx, &usecase.UpdatePositionInput{
			SessionID: sessionID,
			Position:  geo.Point{Lat: *payload.Lat, Lon: *payload.Lon},
			Source:    usecase.PositionSourceMQTT,
		})
	default:
		logger.Warn("Ignoring position message without fix or error")

		return
	}

	if err != nil {
		logger.Warn("Failed to apply position message", slog.Any("error", err))
	}
}

// sessionID extracts the session from {prefix}/{sessionID}/position.
func (s *subscriber) sessionID(topic string) (string, bool) {
	rest, ok := strings.CutPrefix(topic, strings.TrimSuffix(s.cfg.TopicPrefix, "/")+"/")
	if !ok {
		return "", false
	}
	raw, ok := strings.CutSuffix(rest, "/"+positionSuffix)
	if !ok {
		return "", false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}

	return id.String(), true
}

// disabled is the feed when MQTT is off.
type disabled struct {
	logger *slog.Logger
}

func (d disabled) Serve(context.Context) error {
	d.logger.Info("MQTT GPS feed disabled")

	return nil
}
