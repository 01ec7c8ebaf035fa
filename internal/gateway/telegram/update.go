package telegram

import (
	"encoding/json"
	"io"

	"approval-relay/internal/gateway"
)

// update mirrors the subset of the Bot API Update object the relay reads.
type update struct {
	UpdateID      int64 `json:"update_id"`
	CallbackQuery *struct {
		ID   string `json:"id"`
		From struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
		} `json:"from"`
		Message *struct {
			MessageID int `json:"message_id"`
			Chat      struct {
				ID int64 `json:"id"`
			} `json:"chat"`
		} `json:"message"`
		Data string `json:"data"`
	} `json:"callback_query"`
}

// ParseUpdate decodes a webhook body. Returns the normalized callback and
// true when the update is a callback query; false for any other update kind
// (those are ignored by the relay). A decode error is returned as-is.
func ParseUpdate(r io.Reader) (gateway.Callback, bool, error) {
	var u update
	if err := json.NewDecoder(r).Decode(&u); err != nil {
		return gateway.Callback{}, false, err
	}
	if u.CallbackQuery == nil {
		return gateway.Callback{}, false, nil
	}
	cb := gateway.Callback{
		ID:           u.CallbackQuery.ID,
		FromID:       u.CallbackQuery.From.ID,
		FromUsername: u.CallbackQuery.From.Username,
		Data:         u.CallbackQuery.Data,
	}
	if u.CallbackQuery.Message != nil {
		cb.ChatID = u.CallbackQuery.Message.Chat.ID
		cb.MessageID = u.CallbackQuery.Message.MessageID
	}
	return cb, true, nil
}
