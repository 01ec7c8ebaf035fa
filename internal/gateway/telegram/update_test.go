package telegram

import (
	"strings"
	"testing"
)

func TestParseUpdate_CallbackQuery(t *testing.T) {
	body := `{
		"update_id": 7001,
		"callback_query": {
			"id": "cb-1",
			"from": {"id": 42, "username": "the_admin"},
			"message": {"message_id": 555, "chat": {"id": -100123}},
			"data": "allow:deadbeefdeadbeefdeadbeefdeadbeef"
		}
	}`
	cb, ok, err := ParseUpdate(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ParseUpdate: %v", err)
	}
	if !ok {
		t.Fatal("ParseUpdate should recognize a callback query")
	}
	if cb.ID != "cb-1" || cb.FromID != 42 || cb.FromUsername != "the_admin" {
		t.Errorf("callback = %+v", cb)
	}
	if cb.ChatID != -100123 || cb.MessageID != 555 {
		t.Errorf("chat/message = %d/%d", cb.ChatID, cb.MessageID)
	}
	if cb.Data != "allow:deadbeefdeadbeefdeadbeefdeadbeef" {
		t.Errorf("data = %q", cb.Data)
	}
}

func TestParseUpdate_NonCallbackUpdate(t *testing.T) {
	body := `{"update_id": 7002, "message": {"message_id": 1, "text": "hello"}}`
	_, ok, err := ParseUpdate(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ParseUpdate: %v", err)
	}
	if ok {
		t.Error("plain message updates should not be reported as callbacks")
	}
}

func TestParseUpdate_MissingMessage(t *testing.T) {
	// Callback queries on old messages can arrive without the message object.
	body := `{"update_id": 7003, "callback_query": {"id": "cb-2", "from": {"id": 42}, "data": "x"}}`
	cb, ok, err := ParseUpdate(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ParseUpdate: %v", err)
	}
	if !ok {
		t.Fatal("callback without message should still parse")
	}
	if cb.ChatID != 0 || cb.MessageID != 0 {
		t.Errorf("chat/message = %d/%d, want zero values", cb.ChatID, cb.MessageID)
	}
}

func TestParseUpdate_MalformedJSON(t *testing.T) {
	if _, _, err := ParseUpdate(strings.NewReader("{not json")); err == nil {
		t.Error("ParseUpdate should fail on malformed JSON")
	}
}
