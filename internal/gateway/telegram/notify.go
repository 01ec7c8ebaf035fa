package telegram

import (
	"context"

	"approval-relay/internal/gateway"
)

// inlineButton is one Bot API inline-keyboard button.
type inlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

// inlineKeyboard is the Bot API reply_markup for inline keyboards.
type inlineKeyboard struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

// SendApproval delivers the approval request as a message with one row of
// inline buttons. Button payloads must fit the Bot API's 64-byte
// callback_data limit; the broker's action:token payloads do.
func (c *Client) SendApproval(ctx context.Context, msg gateway.ApprovalMessage) error {
	row := make([]inlineButton, 0, len(msg.Buttons))
	for _, b := range msg.Buttons {
		row = append(row, inlineButton{Text: b.Label, CallbackData: b.Data})
	}
	payload := map[string]interface{}{
		"chat_id":      c.ChatID,
		"text":         msg.Text,
		"reply_markup": inlineKeyboard{InlineKeyboard: [][]inlineButton{row}},
	}
	return c.call(ctx, "sendMessage", payload)
}

// AnswerCallback answers a callback query with a short status text.
func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error {
	payload := map[string]interface{}{
		"callback_query_id": callbackID,
		"text":              text,
		"show_alert":        alert,
	}
	return c.call(ctx, "answerCallbackQuery", payload)
}

// ClearButtons removes the inline keyboard from a delivered message.
func (c *Client) ClearButtons(ctx context.Context, chatID int64, messageID int) error {
	payload := map[string]interface{}{
		"chat_id":      chatID,
		"message_id":   messageID,
		"reply_markup": inlineKeyboard{InlineKeyboard: [][]inlineButton{}},
	}
	return c.call(ctx, "editMessageReplyMarkup", payload)
}

// Ping verifies the bot token against the API (getMe). Used for readiness.
func (c *Client) Ping(ctx context.Context) error {
	return c.call(ctx, "getMe", map[string]interface{}{})
}
