// Package stream relays UI commands to the browser tabs of a session over
// websockets. With redis configured, commands travel through pub/sub so any
// instance can reach any tab.
package stream

import (
	"context"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	channelPrefix  = "mapty:"
	channelSuffix  = ":commands"
	channelPattern = channelPrefix + "*" + channelSuffix
	sendBuffer     = 64
)

type Hub struct {
	redis   *redis.Client
	pubsub  *redis.PubSub
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	SessionID string
	Send      chan []byte
}

// NewHub subscribes to the command channels before returning when a redis
// client is given, so nothing published afterwards is missed.
func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		clients: map[string]map[*Client]struct{}{},
	}
	if redisClient == nil {
		return h
	}

	ctx := context.Background()
	pubsub := redisClient.PSubscribe(ctx, channelPattern)
	if _, err := pubsub.Receive(ctx); err != nil {
		log.Warn().Err(err).Msg("redis subscribe failed, commands stay local")
		_ = pubsub.Close()
		return h
	}
	h.redis = redisClient
	h.pubsub = pubsub
	go h.subscribeRedis()
	return h
}

func (h *Hub) Register(sessionID string) *Client {
	client := &Client{
		SessionID: sessionID,
		Send:      make(chan []byte, sendBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[sessionID] == nil {
		h.clients[sessionID] = map[*Client]struct{}{}
	}
	h.clients[sessionID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessionClients, ok := h.clients[client.SessionID]
	if !ok {
		return
	}
	if _, ok := sessionClients[client]; !ok {
		return
	}
	delete(sessionClients, client)
	if len(sessionClients) == 0 {
		delete(h.clients, client.SessionID)
	}
	close(client.Send)
}

// Clients reports how many tabs are connected to sessionID on this instance.
func (h *Hub) Clients(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// Broadcast sends payload to every tab of sessionID. Slow tabs drop messages
// rather than block the sender.
func (h *Hub) Broadcast(sessionID string, payload []byte) {
	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(sessionID), payload).Err()
		if err == nil {
			return
		}
		log.Error().Err(err).Str("session", sessionID).Msg("redis publish failed, delivering locally")
	}
	h.deliver(sessionID, payload)
}

func (h *Hub) deliver(sessionID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[sessionID] {
		select {
		case client.Send <- payload:
		default:
			log.Debug().Str("session", sessionID).Msg("client buffer full, command dropped")
		}
	}
}

func (h *Hub) subscribeRedis() {
	for msg := range h.pubsub.Channel() {
		sessionID := sessionIDFromChannel(msg.Channel)
		if sessionID == "" {
			continue
		}
		h.deliver(sessionID, []byte(msg.Payload))
	}
}

// Close stops the redis subscription.
func (h *Hub) Close() error {
	if h.pubsub == nil {
		return nil
	}
	return h.pubsub.Close()
}

func redisChannel(sessionID string) string {
	return channelPrefix + sessionID + channelSuffix
}

// mapty:{session}:commands
func sessionIDFromChannel(ch string) string {
	if len(ch) <= len(channelPrefix)+len(channelSuffix) {
		return ""
	}
	if !strings.HasPrefix(ch, channelPrefix) || !strings.HasSuffix(ch, channelSuffix) {
		return ""
	}
	return ch[len(channelPrefix) : len(ch)-len(channelSuffix)]
}
