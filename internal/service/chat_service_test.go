package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mindcare/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupChatServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:chat-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.ChatSession{}, &db.ChatMessage{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func TestBotReplyCrisisTakesPriority(t *testing.T) {
	// 同时包含危机词与普通规则词时，危机回复必须胜出
	reply := BotReply("考试压力太大，有点不想活了")
	if !strings.Contains(reply, "12356") {
		t.Fatalf("crisis keyword must trigger hotline reply, got %q", reply)
	}
}

func TestBotReplyRuleMatch(t *testing.T) {
	reply := BotReply("最近总是失眠")
	if !strings.Contains(reply, "睡眠") {
		t.Fatalf("expected sleep-themed reply, got %q", reply)
	}
}

func TestBotReplyDefault(t *testing.T) {
	if BotReply("今天天气不错") != chatDefaultReply {
		t.Fatal("unmatched message should get default reply")
	}
}

func TestChatService_PostMessageRoundtrip(t *testing.T) {
	gdb := setupChatServiceTestDB(t)
	svc := NewChatService(gdb)

	session, err := svc.StartSession(1)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	userMsg, botMsg, err := svc.PostMessage(session.SessionID, 1, "我有点焦虑")
	if err != nil {
		t.Fatalf("post message: %v", err)
	}
	if userMsg.Sender != "user" || botMsg.Sender != "bot" {
		t.Fatalf("unexpected senders: %s / %s", userMsg.Sender, botMsg.Sender)
	}
	if botMsg.Body != BotReply("我有点焦虑") {
		t.Fatalf("bot reply mismatch: %q", botMsg.Body)
	}

	var count int64
	gdb.Model(&db.ChatMessage{}).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 stored messages, got %d", count)
	}
}

func TestChatService_PostMessageWrongUser(t *testing.T) {
	gdb := setupChatServiceTestDB(t)
	svc := NewChatService(gdb)

	session, err := svc.StartSession(1)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	if _, _, err := svc.PostMessage(session.SessionID, 2, "你好"); !errors.Is(err, ErrChatSessionNotFound) {
		t.Fatalf("other user's session must look not found, got %v", err)
	}
	if _, _, err := svc.PostMessage("no-such-session", 1, "你好"); !errors.Is(err, ErrChatSessionNotFound) {
		t.Fatalf("expected ErrChatSessionNotFound, got %v", err)
	}
}
