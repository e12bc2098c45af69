package notify

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"txhandoff/internal/record"
)

func sampleEvent() Event {
	rec := record.New("TX-2024-001", decimal.RequireFromString("1000.50"),
		time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), "ACC-001", "ACC-002")
	return NewEvent(&rec)
}

func TestNewEventCopiesFields(t *testing.T) {
	ev := sampleEvent()
	if ev.TransactionID != "TX-2024-001" || ev.FromAccount != "ACC-001" || ev.ToAccount != "ACC-002" {
		t.Fatalf("unexpected event %+v", ev)
	}
	if !ev.Amount.Equal(decimal.RequireFromString("1000.5")) {
		t.Fatalf("unexpected amount %s", ev.Amount)
	}
}

func TestMemoryPublisher(t *testing.T) {
	pub := NewMemory()
	if err := pub.Publish(context.Background(), DefaultTopic, sampleEvent()); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	events := pub.Events(DefaultTopic)
	if len(events) != 1 || events[0].TransactionID != "TX-2024-001" {
		t.Fatalf("unexpected events %+v", events)
	}
	if len(pub.Events("other")) != 0 {
		t.Fatalf("expected no events on other topic")
	}
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	pub := NewLog(zerolog.New(&buf))
	if err := pub.Publish(context.Background(), DefaultTopic, sampleEvent()); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"amount":"1000.50"`) || !strings.Contains(out, `"topic":"transfer_recorded"`) {
		t.Fatalf("unexpected log output %s", out)
	}
}

func TestLogPublisherKeepsSubCentAmount(t *testing.T) {
	var buf bytes.Buffer
	pub := NewLog(zerolog.New(&buf))
	ev := sampleEvent()
	ev.Amount = decimal.RequireFromString("1000.505")
	if err := pub.Publish(context.Background(), DefaultTopic, ev); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if !strings.Contains(buf.String(), `"amount":"1000.505"`) {
		t.Fatalf("amount rounded in log output %s", buf.String())
	}
}

func TestWebSocketPublisher(t *testing.T) {
	received := make(chan Envelope, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return
		}
		received <- env
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	pub, err := DialWebSocket(ctx, url)
	if err != nil {
		t.Fatalf("DialWebSocket error: %v", err)
	}
	defer pub.Close()

	if err := pub.Publish(ctx, DefaultTopic, sampleEvent()); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	select {
	case env := <-received:
		if env.Topic != DefaultTopic || env.Event.TransactionID != "TX-2024-001" {
			t.Fatalf("unexpected envelope %+v", env)
		}
	case <-ctx.Done():
		t.Fatalf("timed out waiting for websocket frame")
	}
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	pub, err := Build(ctx, "", Options{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Build default error: %v", err)
	}
	if _, ok := pub.(*Log); !ok {
		t.Fatalf("expected log publisher, got %T", pub)
	}
	if pub, err = Build(ctx, "memory", Options{}, zerolog.Nop()); err != nil {
		t.Fatalf("Build memory error: %v", err)
	}
	if _, ok := pub.(*Memory); !ok {
		t.Fatalf("expected memory publisher, got %T", pub)
	}
	if pub, err = Build(ctx, "kafka", Options{Brokers: []string{"localhost:19092"}}, zerolog.Nop()); err != nil {
		t.Fatalf("Build kafka error: %v", err)
	}
	pub.Close()
	if _, err := Build(ctx, "kafka", Options{}, zerolog.Nop()); err == nil {
		t.Fatalf("expected error without brokers")
	}
	if _, err := Build(ctx, "nsq", Options{}, zerolog.Nop()); err == nil {
		t.Fatalf("expected error without nsqd address")
	}
	if _, err := Build(ctx, "websocket", Options{}, zerolog.Nop()); err == nil {
		t.Fatalf("expected error without url")
	}
	if _, err := Build(ctx, "carrier-pigeon", Options{}, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
