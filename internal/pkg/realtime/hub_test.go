package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internlink/backend/internal/app/models"
)

func TestTopicFor(t *testing.T) {
	tests := []struct {
		name       string
		role       models.Role
		userID     int64
		department string
		want       string
	}{
		{"enterprise gets its own user topic", models.RoleEnterprise, 42, "", "enterprise/42"},
		{"teacher gets the department topic", models.RoleTeacher, 42, "Computer Science", "teacher/Computer Science"},
		{"student gets the department topic", models.RoleStudent, 42, "Computer Science", "student/Computer Science"},
		{"admin falls through to the shared topic", models.RoleAdmin, 42, "", "admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopicFor(tt.role, tt.userID, tt.department))
		})
	}
}

func newTestClient(hub *Hub, userID int64, topics ...string) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, 16),
		userID: userID,
		topics: topics,
	}
}

func receiveEvent(t *testing.T, client *Client) *Event {
	t.Helper()
	select {
	case data := <-client.send:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		return &event
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return nil
	}
}

func TestHubPublish(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	subscriber := newTestClient(hub, 30, "student/Computer Science")
	other := newTestClient(hub, 31, "student/Biology")
	hub.register <- subscriber
	hub.register <- other

	hub.Publish("student/Computer Science", "New offer approved by teacher: Martin")

	event := receiveEvent(t, subscriber)
	assert.Equal(t, "student/Computer Science", event.Topic)
	assert.Equal(t, "New offer approved by teacher: Martin", event.Content)
	assert.False(t, event.Timestamp.IsZero())

	select {
	case <-other.send:
		t.Fatal("event leaked to another topic")
	default:
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	slow := &Client{
		hub:    hub,
		send:   make(chan []byte, 1),
		userID: 10,
		topics: []string{"enterprise/10"},
	}
	hub.register <- slow
	require.Eventually(t, func() bool {
		return hub.SubscriberCount("enterprise/10") == 1
	}, time.Second, 10*time.Millisecond)

	// Nothing drains the send channel, so the second event overflows it
	// and the third must still go through without wedging the hub.
	done := make(chan struct{})
	go func() {
		hub.Publish("enterprise/10", "first")
		hub.Publish("enterprise/10", "second")
		hub.Publish("enterprise/10", "third")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked behind a slow client")
	}

	require.Eventually(t, func() bool {
		return hub.SubscriberCount("enterprise/10") == 0
	}, time.Second, 10*time.Millisecond)

	// The buffered event is still readable, then the channel is closed
	<-slow.send
	_, open := <-slow.send
	assert.False(t, open)
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	client := newTestClient(hub, 10, "enterprise/10")
	hub.register <- client
	require.Eventually(t, func() bool {
		return hub.SubscriberCount("enterprise/10") == 1
	}, time.Second, 10*time.Millisecond)

	hub.unregister <- client
	require.Eventually(t, func() bool {
		return hub.SubscriberCount("enterprise/10") == 0
	}, time.Second, 10*time.Millisecond)

	// The send channel is closed once the client is out
	_, open := <-client.send
	assert.False(t, open)
}
