package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"valuebet/internal/domain/value"
	"valuebet/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminIDs []int64) {
	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(adminIDs))

	adminGroup.HandleMessage(h.OnStart, th.CommandEqual("start"))
	adminGroup.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	adminGroup.HandleMessage(h.OnStats, th.CommandEqual("stats"))
	adminGroup.HandleMessage(h.OnPending, th.CommandEqual("pending"))

	cbGroup := bh.Group(th.AnyCallbackQuery())
	cbGroup.Use(middleware.AdminOnly(adminIDs))

	cbGroup.HandleCallbackQuery(h.OnBetAction, th.CallbackDataPrefix(value.ActionPlayed.String()+":"))
	cbGroup.HandleCallbackQuery(h.OnBetAction, th.CallbackDataPrefix(value.ActionSkipped.String()+":"))
}
