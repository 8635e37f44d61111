package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/mindmesh/internship_enrollment/models"
)

// EnrollmentEvent is pushed to every connected admin dashboard when a record
// is created or its status changes.
type EnrollmentEvent struct {
	Type         string `json:"type"`
	EnrollmentID string `json:"enrollment_id"`
	Name         string `json:"name"`
	Domain       string `json:"domain"`
	Status       string `json:"status"`
	Amount       int    `json:"amount"`
}

var clients = make(map[*websocket.Conn]bool)
var clientsMu sync.RWMutex
var Register = make(chan *websocket.Conn)
var Unregister = make(chan *websocket.Conn)
var Events = make(chan EnrollmentEvent, 16)

func RunHub() {
	for {
		select {
		case conn := <-Register:
			log.Println("Admin feed client connected")
			clientsMu.Lock()
			clients[conn] = true
			clientsMu.Unlock()
		case conn := <-Unregister:
			log.Println("Admin feed client disconnected")
			clientsMu.Lock()
			delete(clients, conn)
			clientsMu.Unlock()
		case event := <-Events:
			broadcast(event)
		}
	}
}

func broadcast(event EnrollmentEvent) {
	var dead []*websocket.Conn

	clientsMu.RLock()
	for conn := range clients {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Error writing to admin feed client: %v", err)
			conn.Close()
			dead = append(dead, conn)
		}
	}
	clientsMu.RUnlock()

	if len(dead) > 0 {
		clientsMu.Lock()
		for _, conn := range dead {
			delete(clients, conn)
		}
		clientsMu.Unlock()
	}
}

// ServeAdminFeed keeps the connection registered until the client goes away.
// The feed is push-only; inbound frames are discarded.
func ServeAdminFeed(c *websocket.Conn) {
	Register <- c
	defer func() {
		Unregister <- c
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}

// FeedPublisher adapts the hub to the orchestration's EventPublisher.
type FeedPublisher struct{}

func (FeedPublisher) EnrollmentCreated(e *models.Enrollment) {
	publish("enrollment_created", e)
}

func (FeedPublisher) EnrollmentStatusChanged(e *models.Enrollment) {
	publish("status_changed", e)
}

func publish(eventType string, e *models.Enrollment) {
	event := EnrollmentEvent{
		Type:         eventType,
		EnrollmentID: e.EnrollmentID,
		Name:         e.Name,
		Domain:       e.Domain,
		Status:       e.Status,
		Amount:       e.Amount,
	}
	select {
	case Events <- event:
	default:
		log.Println("Admin feed buffer full, dropping event")
	}
}
