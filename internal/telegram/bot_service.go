// Package telegram is the Telegram transport for the chat hub. It long-polls
// the Bot API and forwards each text message into the hub, replying with the
// hub's synchronous response. Telegram chat IDs are namespaced into hub user
// IDs so they can never collide with HTTP/WebSocket identities.
package telegram

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"randomconnect/backend/internal/chathub"
)

const welcomeText = `👋 Welcome to Random Connect!

Chat anonymously with strangers. Your phone number is never shared.

Commands:
#meet - find a random chat partner
#bye - end the current chat
#again - end the chat and find a new partner
#hide - toggle phone number masking (ON by default)
#who - show your partner's nickname
#m - check your inbox
#r <text> - send a message to your partner`

const helpText = `How it works:
1. Send #meet to join the matchmaking queue
2. When matched, use #r <text> to talk and #m to read replies
3. Send #bye to end the chat, or #again to rotate partners

🔒 Phone numbers are masked by default; toggle with #hide.
🛡️ Everything is ephemeral: nothing is stored permanently.`

// BotService receives Telegram updates and routes them to the hub.
type BotService struct {
	BotAPI *tgbotapi.BotAPI
	Hub    *chathub.Hub
}

// NewBotService authorizes against the Bot API.
func NewBotService(token string, hub *chathub.Hub) (*BotService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram authorization failed: %w", err)
	}
	bot.Debug = false
	log.Printf("INFO: authorized on account %s", bot.Self.UserName)
	return &BotService{BotAPI: bot, Hub: hub}, nil
}

// Run consumes the update channel until it is closed. Start it in its own
// goroutine.
func (s *BotService) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	for update := range s.BotAPI.GetUpdatesChan(u) {
		msg := update.Message
		if msg == nil || msg.Text == "" {
			continue
		}
		s.reply(msg.Chat.ID, s.dispatch(msg))
	}
}

// dispatch maps one Telegram message to a reply. Bot-level commands are
// handled here; everything else goes through the hub's command router.
func (s *BotService) dispatch(msg *tgbotapi.Message) string {
	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			return welcomeText
		case "help":
			return helpText
		}
	}
	return s.Hub.Process(hubUserID(msg.Chat.ID), msg.Text, displayName(msg.From))
}

func (s *BotService) reply(chatID int64, text string) {
	if text == "" {
		return
	}
	if _, err := s.BotAPI.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("ERROR: failed to send telegram reply: %v", err)
	}
}

// hubUserID namespaces a Telegram chat ID into a hub user identifier.
func hubUserID(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}

// displayName picks a nickname from the Telegram sender, falling back to the
// hub's derived placeholder when nothing usable is set.
func displayName(from *tgbotapi.User) string {
	if from == nil {
		return ""
	}
	if from.UserName != "" {
		return from.UserName
	}
	return from.FirstName
}
