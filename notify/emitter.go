package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
	"github.com/collecokzn-creator/colleco-mvp-sub004/rdx"
)

const channel = "notify-events"

// Emit publishes a notification to Redis. Failures are logged and
// dropped; notifications are best effort.
func Emit(_ context.Context, n models.Notification) {
	if n.CreatedAt == 0 {
		n.CreatedAt = time.Now().UnixMilli()
	}
	data, err := json.Marshal(n)
	if err != nil {
		log.Printf("notify: marshal failed: %v", err)
		return
	}
	rdx.Publish(channel, data)
}

// StartWorker subscribes to the Redis channel and forwards each event to
// the hub. Runs until the subscription channel closes.
func StartWorker(hub *Hub) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("notify: worker listening")

	for msg := range ch {
		var n models.Notification
		if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
			log.Printf("notify: bad payload: %v", err)
			continue
		}
		hub.broadcast <- broadcastMsg{UserID: n.UserID, Data: []byte(msg.Payload)}
	}
}
