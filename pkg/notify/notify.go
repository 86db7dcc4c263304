// Package notify 发送运营通知（评估完成、新建督导任务）。
package notify

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier 通知接口；发送失败由调用方记录日志，不影响业务结果
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Nop 不发送任何通知
type Nop struct{}

func (Nop) Notify(context.Context, string) error { return nil }

// Telegram 向固定会话发送消息
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram 创建 Telegram 通知器
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("创建 Telegram Bot 失败: %w", err)
	}
	api.Debug = false
	return &Telegram{api: api, chatID: chatID}, nil
}

func (t *Telegram) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("发送 Telegram 消息失败: %w", err)
	}
	return nil
}

// Recorder 记录消息，供测试断言
type Recorder struct {
	mu       sync.Mutex
	Messages []string
}

func (r *Recorder) Notify(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, text)
	return nil
}

// Sent 返回已记录消息的副本
func (r *Recorder) Sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Messages...)
}
