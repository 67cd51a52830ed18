package config

// Telegram is the alert bot: one target chat, a set of admins allowed to
// use commands and act on alerts.
type Telegram struct {
	BotToken string  `env:"BOT_TOKEN,required" json:"-"`
	ChatID   int64   `env:"BOT_CHAT_ID,required"`
	AdminIDs []int64 `env:"BOT_ADMIN_IDS" validate:"min=1"`
}
