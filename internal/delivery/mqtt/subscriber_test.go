package mqtt

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"saferoute/config"
	domainerrors "saferoute/internal/domain/errors"
	"saferoute/internal/errors"
	"saferoute/internal/geo"
	usecasemocks "saferoute/internal/mocks/usecase"
	"saferoute/internal/usecase"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

const testSessionID = "7b0f9a56-3c1e-4d2a-9f0e-2a6c5d8e1b34"

type fakeToken struct {
	err  error
	done chan struct{}
}

func completedToken(err error) *fakeToken {
	done := make(chan struct{})
	close(done)

	return &fakeToken{err: err, done: done}
}

func (t *fakeToken) Wait() bool {
	<-t.done

	return true
}

func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }

func (t *fakeToken) Done() <-chan struct{} { return t.done }
func (t *fakeToken) Error() error          { return t.err }

type subscription struct {
	topic   string
	qos     byte
	handler paho.MessageHandler
}

type fakeClient struct {
	connectToken paho.Token

	mu            sync.Mutex
	subscriptions []subscription
	disconnected  bool
}

func (c *fakeClient) IsConnected() bool      { return true }
func (c *fakeClient) IsConnectionOpen() bool { return true }
func (c *fakeClient) Connect() paho.Token    { return c.connectToken }

func (c *fakeClient) Disconnect(uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disconnected = true
}

func (c *fakeClient) Publish(string, byte, bool, interface{}) paho.Token {
	return completedToken(nil)
}

func (c *fakeClient) Subscribe(topic string, qos byte, handler paho.MessageHandler) paho.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscriptions = append(c.subscriptions, subscription{topic: topic, qos: qos, handler: handler})

	return completedToken(nil)
}

func (c *fakeClient) SubscribeMultiple(map[string]byte, paho.MessageHandler) paho.Token {
	return completedToken(nil)
}

func (c *fakeClient) Unsubscribe(...string) paho.Token { return completedToken(nil) }

func (c *fakeClient) AddRoute(string, paho.MessageHandler) {}

func (c *fakeClient) OptionsReader() paho.ClientOptionsReader { return paho.ClientOptionsReader{} }

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 1 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 1 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

func testMQTTConfig() *config.MQTTConfig {
	return &config.MQTTConfig{
		Enabled:     true,
		Broker:      "tcp://localhost:1883",
		ClientID:    "saferoute-test",
		TopicPrefix: "saferoute/sessions/",
		QoS:         1,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestSubscriber_HandleMessage(t *testing.T) {
	positionTopic := "saferoute/sessions/" + testSessionID + "/position"

	tests := []struct {
		name      string
		topic     string
		payload   string
		setupMock func(uc *usecasemocks.MockNavigationUsecase)
	}{
		{
			name:    "position fix",
			topic:   positionTopic,
			payload: `{"lat":25.03,"lon":121.56}`,
			setupMock: func(uc *usecasemocks.MockNavigationUsecase) {
				uc.EXPECT().UpdatePosition(mock.Anything, &usecase.UpdatePositionInput{
					SessionID: testSessionID,
					Position:  geo.Point{Lat: 25.03, Lon: 121.56},
					Source:    usecase.PositionSourceMQTT,
				}).Return(nil, nil)
			},
		},
		{
			name:    "gps failure",
			topic:   positionTopic,
			payload: `{"error":"timeout"}`,
			setupMock: func(uc *usecasemocks.MockNavigationUsecase) {
				uc.EXPECT().ReportGPSError(mock.Anything, testSessionID, "timeout").Return(nil, nil)
			},
		},
		{
			name:    "upper-case session id",
			topic:   "saferoute/sessions/7B0F9A56-3C1E-4D2A-9F0E-2A6C5D8E1B34/position",
			payload: `{"lat":0,"lon":0}`,
			setupMock: func(uc *usecasemocks.MockNavigationUsecase) {
				uc.EXPECT().UpdatePosition(mock.Anything, mock.MatchedBy(func(in *usecase.UpdatePositionInput) bool {
					return in.SessionID == testSessionID
				})).Return(nil, nil)
			},
		},
		{
			name:    "use case error is swallowed",
			topic:   positionTopic,
			payload: `{"lat":0,"lon":0}`,
			setupMock: func(uc *usecasemocks.MockNavigationUsecase) {
				uc.EXPECT().UpdatePosition(mock.Anything, mock.Anything).
					Return(nil, errors.Wrap(domainerrors.ErrSessionNotFound, testSessionID))
			},
		},
		{name: "malformed payload", topic: positionTopic, payload: `{"lat":`},
		{name: "missing longitude", topic: positionTopic, payload: `{"lat":1}`},
		{name: "foreign prefix", topic: "other/" + testSessionID + "/position", payload: `{"lat":0,"lon":0}`},
		{name: "wrong suffix", topic: "saferoute/sessions/" + testSessionID + "/status", payload: `{"lat":0,"lon":0}`},
		{name: "session id is not a uuid", topic: "saferoute/sessions/abc/position", payload: `{"lat":0,"lon":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := usecasemocks.NewMockNavigationUsecase(t)
			if tt.setupMock != nil {
				tt.setupMock(uc)
			}

			s := newSubscriber(testMQTTConfig(), &fakeClient{}, uc, testLogger())
			s.handleMessage(nil, fakeMessage{topic: tt.topic, payload: []byte(tt.payload)})
		})
	}
}

func TestSubscriber_OnConnectSubscribes(t *testing.T) {
	uc := usecasemocks.NewMockNavigationUsecase(t)
	uc.EXPECT().ReportGPSError(mock.Anything, testSessionID, "permission_denied").Return(nil, nil)

	client := &fakeClient{}
	s := newSubscriber(testMQTTConfig(), client, uc, testLogger())

	s.onConnect(client)

	require.Len(t, client.subscriptions, 1)
	sub := client.subscriptions[0]
	assert.Equal(t, "saferoute/sessions/+/position", sub.topic)
	assert.Equal(t, byte(1), sub.qos)

	sub.handler(client, fakeMessage{
		topic:   "saferoute/sessions/" + testSessionID + "/position",
		payload: []byte(`{"error":"permission_denied"}`),
	})
}

func TestSubscriber_ServeUntilStopped(t *testing.T) {
	client := &fakeClient{connectToken: completedToken(nil)}
	s := newSubscriber(testMQTTConfig(), client, usecasemocks.NewMockNavigationUsecase(t), testLogger())

	served := make(chan error, 1)
	go func() {
		served <- s.Serve(context.Background())
	}()

	require.NoError(t, s.stop(context.Background()))
	require.NoError(t, s.stop(context.Background()))

	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after stop")
	}

	client.mu.Lock()
	defer client.mu.Unlock()
	assert.True(t, client.disconnected)
}

func TestSubscriber_ServeConnectError(t *testing.T) {
	client := &fakeClient{connectToken: completedToken(errors.New("connection refused"))}
	s := newSubscriber(testMQTTConfig(), client, usecasemocks.NewMockNavigationUsecase(t), testLogger())

	err := s.Serve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNewSubscriber(t *testing.T) {
	tests := []struct {
		name        string
		mqtt        *config.MQTTConfig
		wantErr     bool
		wantEnabled bool
	}{
		{name: "no section", mqtt: nil},
		{name: "disabled", mqtt: &config.MQTTConfig{Broker: "tcp://localhost:1883"}},
		{name: "enabled without broker", mqtt: &config.MQTTConfig{Enabled: true}, wantErr: true},
		{name: "enabled", mqtt: testMQTTConfig(), wantEnabled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewSubscriber(SubscriberParams{
				Lc:           fxtest.NewLifecycle(t),
				Config:       &config.Config{MQTT: tt.mqtt},
				NavigationUC: usecasemocks.NewMockNavigationUsecase(t),
				Logger:       testLogger(),
			})
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)

			_, enabled := d.(*subscriber)
			assert.Equal(t, tt.wantEnabled, enabled)
			if !enabled {
				assert.NoError(t, d.Serve(context.Background()))
			}
		})
	}
}
