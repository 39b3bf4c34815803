package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mindcare/internal/db"
	"gorm.io/gorm"
)

// ErrChatSessionNotFound 在会话不存在、已结束或不属于当前用户时返回
var ErrChatSessionNotFound = errors.New("chat session not found")

// ChatService 负责支持聊天会话与消息
type ChatService struct {
	db *gorm.DB
}

// ChatSessionExport 是数据导出时的会话投影
type ChatSessionExport struct {
	SessionID string           `json:"sessionId"`
	StartedAt string           `json:"startedAt"`
	Status    string           `json:"status"`
	Messages  []db.ChatMessage `json:"messages"`
}

// chatRule 将关键词组映射到固定回复，命中任一关键词即采用该回复
type chatRule struct {
	keywords []string
	reply    string
}

// crisisRule 永远最先匹配，任何危机关键词都优先于其它规则
var crisisRule = chatRule{
	keywords: []string{"自杀", "不想活", "结束生命", "伤害自己", "自残"},
	reply:    "我非常担心你刚才说的内容。请立刻拨打心理援助热线 12356（24 小时），你不需要独自面对，专业的帮助现在就在。",
}

var chatRules = []chatRule{
	{
		keywords: []string{"焦虑", "紧张", "恐慌"},
		reply:    "听起来你正被焦虑困扰，这确实不容易。可以试试资源库里的呼吸练习，对缓解焦虑情绪很有帮助。需要我带你看看焦虑相关的资源吗？",
	},
	{
		keywords: []string{"抑郁", "难过", "绝望"},
		reply:    "很抱歉你现在心情低落。这些感受是真实的，你并不孤单。可以看看抑郁相关的资源，或者和平台上的专业咨询师聊一聊。",
	},
	{
		keywords: []string{"压力", "喘不过气", "撑不住"},
		reply:    "压力大的时候会感觉被压垮，尤其是在学业期间。试过我们的压力管理工具吗？也可以说说今天最让你有压力的事。",
	},
	{
		keywords: []string{"考试", "学习", "成绩"},
		reply:    "学业压力常常很沉重，很多同学都有同样的困扰。我们有针对学业压力和学习方法的资源，要看看应对考试焦虑的办法吗？",
	},
	{
		keywords: []string{"睡眠", "失眠", "睡不着"},
		reply:    "睡眠问题会明显影响情绪和学习状态。资源库里有关于睡眠卫生的内容，规律的作息能带来很大改善。",
	},
	{
		keywords: []string{"帮助", "支持", "咨询"},
		reply:    "我在这里。你可以浏览心理健康资源、做一次心情打卡、寻找合适的咨询师，或在需要时使用紧急求助。现在最想从哪里开始？",
	},
}

const chatDefaultReply = "谢谢你愿意说出来。我会尽力支持你。你可以浏览心理健康资源、联系专业咨询师，或使用平台上的自助工具。今天有什么我可以帮你找的吗？"

// NewChatService 构造 ChatService
func NewChatService(gdb *gorm.DB) *ChatService {
	return &ChatService{db: gdb}
}

// BotReply 是纯映射函数：按规则表顺序匹配消息并返回固定回复。
// 危机关键词最先检查，未命中任何规则时返回兜底回复。
func BotReply(message string) string {
	lowered := strings.ToLower(message)

	for _, keyword := range crisisRule.keywords {
		if strings.Contains(lowered, keyword) {
			return crisisRule.reply
		}
	}

	for _, rule := range chatRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.reply
			}
		}
	}

	return chatDefaultReply
}

// StartSession 创建一个新的支持聊天会话
func (s *ChatService) StartSession(userID uint) (*db.ChatSession, error) {
	session := db.ChatSession{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Status:    "active",
	}

	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("create chat session: %w", err)
	}
	return &session, nil
}

// PostMessage 在活跃会话中追加用户消息，并写入机器人回复
func (s *ChatService) PostMessage(sessionID string, userID uint, body string) (*db.ChatMessage, *db.ChatMessage, error) {
	body = sanitizeText(body)
	if body == "" {
		return nil, nil, fmt.Errorf("%w: message 不能为空", ErrValidation)
	}
	if len([]rune(body)) > 1000 {
		return nil, nil, fmt.Errorf("%w: message 不能超过 1000 字", ErrValidation)
	}

	var session db.ChatSession
	if err := s.db.Where("session_id = ? AND user_id = ? AND status = ?", sessionID, userID, "active").
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrChatSessionNotFound
		}
		return nil, nil, fmt.Errorf("find chat session: %w", err)
	}

	userMessage := db.ChatMessage{ChatSessionID: session.ID, Sender: "user", Body: body}
	botMessage := db.ChatMessage{ChatSessionID: session.ID, Sender: "bot", Body: BotReply(body)}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&userMessage).Error; err != nil {
			return err
		}
		return tx.Create(&botMessage).Error
	}); err != nil {
		return nil, nil, fmt.Errorf("save chat messages: %w", err)
	}

	return &userMessage, &botMessage, nil
}

// SessionsWithMessages 返回用户的全部会话及消息（数据导出用）
func (s *ChatService) SessionsWithMessages(userID uint) ([]ChatSessionExport, error) {
	var sessions []db.ChatSession
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list chat sessions: %w", err)
	}

	exports := make([]ChatSessionExport, 0, len(sessions))
	for _, session := range sessions {
		var messages []db.ChatMessage
		if err := s.db.Where("chat_session_id = ?", session.ID).
			Order("created_at ASC, id ASC").
			Find(&messages).Error; err != nil {
			return nil, fmt.Errorf("list chat messages: %w", err)
		}
		exports = append(exports, ChatSessionExport{
			SessionID: session.SessionID,
			StartedAt: session.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			Status:    session.Status,
			Messages:  messages,
		})
	}

	return exports, nil
}
