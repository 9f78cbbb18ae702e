// Package notify pushes playlist-change notifications to the kiosk
// displays over MQTT so idle devices refresh without polling.
package notify

import (
	"fmt"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// playlistTopic carries a retained timestamp; displays compare it against
// the one they last applied.
const playlistTopic = "kiosk/playlist/updated"

// MQTTNotifier publishes change notifications to a broker.
type MQTTNotifier struct {
	client mqtt.Client
}

// NewMQTT connects to the broker and returns a notifier.
func NewMQTT(brokerURL, clientID string) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("[notify] connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("[notify] MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to MQTT broker: %w", token.Error())
	}
	return &MQTTNotifier{client: client}, nil
}

// PlaylistUpdated publishes a retained marker on the playlist topic.
// Failures are logged, not returned; notification is best effort and must
// never fail a persisted mutation.
func (n *MQTTNotifier) PlaylistUpdated() {
	payload := strconv.FormatInt(time.Now().Unix(), 10)
	token := n.client.Publish(playlistTopic, 1, true, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		log.Warn().Err(err).Msg("[notify] could not publish playlist update")
	}
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() {
	n.client.Disconnect(250)
}
