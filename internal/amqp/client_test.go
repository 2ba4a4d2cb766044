package amqp

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/rabbitmq/amqp091-go"

	"finman/internal/core"
	"finman/internal/log"
)

type fakeChannel struct {
	exchange  string
	key       string
	published []amqp091.Publishing
	err       error
	closed    bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.exchange = exchange
	f.key = key
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestClient_PublishTransaction(t *testing.T) {
	ch := &fakeChannel{}
	client := &Client{
		channel:      ch,
		exchangeName: "finman",
		queueName:    "transactions",
		sessionID:    "session-1",
	}

	if err := client.PublishTransaction(context.Background(), core.NewExpense("Rent", 400), 600); err != nil {
		t.Fatalf("PublishTransaction returned error: %v", err)
	}

	if ch.exchange != "finman" || ch.key != "transactions" {
		t.Errorf("published to %q/%q, want finman/transactions", ch.exchange, ch.key)
	}
	if len(ch.published) != 1 {
		t.Fatalf("expected 1 publishing, got %d", len(ch.published))
	}

	pub := ch.published[0]
	if pub.DeliveryMode != amqp091.Persistent {
		t.Errorf("DeliveryMode = %d, want persistent", pub.DeliveryMode)
	}
	if pub.Type != TransactionRecordedType {
		t.Errorf("Type = %q, want %q", pub.Type, TransactionRecordedType)
	}

	msg, err := TransactionRecordedMessageFromJSON(pub.Body)
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if msg.ID == "" || msg.ID != pub.MessageId {
		t.Errorf("message id %q does not match MessageId %q", msg.ID, pub.MessageId)
	}
	if msg.SessionID != "session-1" || msg.Kind != core.Expense || msg.Label != "Rent" {
		t.Errorf("unexpected message: %+v", msg)
	}
	if msg.Amount != 400 || msg.Balance != 600 {
		t.Errorf("amount/balance = %v/%v, want 400/600", msg.Amount, msg.Balance)
	}
}

func TestClient_PublishTransactionError(t *testing.T) {
	client := &Client{channel: &fakeChannel{err: errors.New("channel closed")}}

	err := client.PublishTransaction(context.Background(), core.NewIncome("Job", 1), 1)
	if err == nil {
		t.Fatal("expected error when the channel fails")
	}
}

func TestClient_Close(t *testing.T) {
	t.Run("nil components", func(t *testing.T) {
		client := &Client{}
		if err := client.Close(); err != nil {
			t.Fatalf("Close should not return error with nil components: %v", err)
		}
	})

	t.Run("closes channel", func(t *testing.T) {
		ch := &fakeChannel{}
		client := &Client{channel: ch}
		if err := client.Close(); err != nil {
			t.Fatalf("Close returned error: %v", err)
		}
		if !ch.closed {
			t.Error("channel was not closed")
		}
	})
}

func TestNewTransactionRecordedMessageIDsAreUnique(t *testing.T) {
	tx := core.NewIncome("Job", 1000)
	a := NewTransactionRecordedMessage("s", tx, 1000)
	b := NewTransactionRecordedMessage("s", tx, 1000)
	if a.ID == b.ID {
		t.Fatalf("expected distinct message ids, got %q twice", a.ID)
	}
}

func TestClient_PublishLogsThroughContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Level: slog.LevelDebug, Output: &buf})
	ctx := log.WithContext(context.Background(), logger)
	client := &Client{channel: &fakeChannel{}, exchangeName: "finman", queueName: "transactions", sessionID: "s"}

	if err := client.PublishTransaction(ctx, core.NewIncome("Job", 1), 1); err != nil {
		t.Fatalf("PublishTransaction returned error: %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "component=amqp") || !strings.Contains(out, "Published transaction message") {
		t.Fatalf("expected amqp debug record, got %q", out)
	}
}
