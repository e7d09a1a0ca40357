package network

import (
	"maze-core/pkg/api"
	"maze-core/pkg/logger"

	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// subscriberBuffer - глубина личной очереди клиента. Медленный клиент теряет кадры, а не тормозит сессию.
const subscriberBuffer = 64

// Broadcaster занимается только рассылкой сообщений подписчикам сессий
type Broadcaster struct {
	mu deadlock.RWMutex
	// Мапа: SessionID -> ClientID -> Личный канал
	sessions map[string]map[string]chan api.ServerResponse
	log      *logrus.Entry
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		sessions: make(map[string]map[string]chan api.ServerResponse),
		log:      logger.Component("hub"),
	}
}

// Register создает личный канал клиента в сессии
func (b *Broadcaster) Register(sessionID, clientID string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.sessions[sessionID]
	if !ok {
		subs = make(map[string]chan api.ServerResponse)
		b.sessions[sessionID] = subs
	}

	// Если канал был, закрываем
	if old, ok := subs[clientID]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, subscriberBuffer)
	subs[clientID] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(sessionID, clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.sessions[sessionID]
	if !ok {
		return
	}
	if ch, ok := subs[clientID]; ok {
		close(ch)
		delete(subs, clientID)
	}
	if len(subs) == 0 {
		delete(b.sessions, sessionID)
	}
}

// CloseSession отключает всех подписчиков сессии.
func (b *Broadcaster) CloseSession(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.sessions[sessionID] {
		close(ch)
	}
	delete(b.sessions, sessionID)
}

// SendTo отправляет сообщение одному клиенту (Unicast)
func (b *Broadcaster) SendTo(sessionID, clientID string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.sessions[sessionID][clientID]; ok {
		b.offer(ch, msg, clientID)
	}
}

// Publish отправляет всем подписчикам сессии
func (b *Broadcaster) Publish(sessionID string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for clientID, ch := range b.sessions[sessionID] {
		b.offer(ch, msg, clientID)
	}
}

func (b *Broadcaster) offer(ch chan api.ServerResponse, msg api.ServerResponse, clientID string) {
	select {
	case ch <- msg:
	default:
		b.log.WithFields(logrus.Fields{
			"client": clientID,
			"type":   msg.Type,
			"frame":  msg.Frame,
		}).Debug("Subscriber channel full, message dropped")
	}
}

// HasSubscribers проверяет, смотрит ли кто-нибудь на сессию.
// Без подписчиков UPDATE не собирается.
func (b *Broadcaster) HasSubscribers(sessionID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sessions[sessionID]) > 0
}

// SubscriberCount возвращает количество активных подписчиков сессии.
func (b *Broadcaster) SubscriberCount(sessionID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sessions[sessionID])
}
