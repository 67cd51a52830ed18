// Package middleware guards the bot: only configured admins may drive it.
package middleware

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

// AdminOnly drops every update not sent by one of the admin IDs.
// Channel posts and other From-less updates are dropped too.
func AdminOnly(adminIDs []int64) th.Handler {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return func(ctx *th.Context, update telego.Update) error {
		var userID int64

		switch {
		case update.Message != nil && update.Message.From != nil:
			userID = update.Message.From.ID
		case update.CallbackQuery != nil:
			userID = update.CallbackQuery.From.ID
		default:
			return nil
		}

		if _, ok := admins[userID]; ok {
			return ctx.Next(update)
		}

		return nil
	}
}
