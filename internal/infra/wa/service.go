package wa

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/mdp/qrterminal"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	walog "go.mau.fi/whatsmeow/util/log"
	_ "modernc.org/sqlite"
)

// Message is the part of an incoming WhatsApp message the bot cares about.
type Message struct {
	Chat     types.JID
	Sender   types.JID
	PushName string
	Text     string
	IsFromMe bool
}

type MessageHandler func(ctx context.Context, msg Message)

// ReplyOptions make replies look less robotic.
type ReplyOptions struct {
	DelayMin   time.Duration
	DelayMax   time.Duration // 0 = use DelayMin as fixed
	ShowTyping bool
}

type Service struct {
	client         *whatsmeow.Client
	dbPath         string
	log            walog.Logger
	reply          ReplyOptions
	messageHandler MessageHandler
}

func NewService(dbPath string, logger walog.Logger, reply ReplyOptions) *Service {
	return &Service{
		dbPath: dbPath,
		log:    logger,
		reply:  reply,
	}
}

func (s *Service) Initialize(ctx context.Context) error {
	// whatsmeow keeps its own session database next to the habit store.
	dbAddress := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", s.dbPath)
	container, err := sqlstore.New(ctx, "sqlite", dbAddress, s.log.Sub("Database"))
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	devices, err := container.GetAllDevices(ctx)
	if err != nil {
		return fmt.Errorf("failed to get devices: %w", err)
	}

	var device *store.Device
	if len(devices) > 0 {
		device = devices[0]
	} else {
		device = container.NewDevice()
	}

	s.client = whatsmeow.NewClient(device, s.log.Sub("Client"))
	s.registerEventHandlers()

	return nil
}

func (s *Service) Connect() error {
	if s.client == nil {
		return errors.New("client not initialized")
	}
	if s.client.IsConnected() {
		return nil
	}
	return s.client.Connect()
}

func (s *Service) Disconnect() {
	if s.client != nil {
		s.client.Disconnect()
	}
}

func (s *Service) SetMessageHandler(handler MessageHandler) {
	s.messageHandler = handler
}

func (s *Service) registerEventHandlers() {
	s.client.AddEventHandler(func(evt interface{}) {
		switch v := evt.(type) {
		case *events.Message:
			if s.messageHandler == nil {
				return
			}
			msg := Message{
				Chat:     v.Info.Chat,
				Sender:   v.Info.Sender,
				PushName: v.Info.PushName,
				Text:     MessageText(v.Message),
				IsFromMe: v.Info.IsFromMe,
			}
			go s.messageHandler(context.Background(), msg)
		case *events.Connected:
			s.log.Infof("Connected to WhatsApp")
		case *events.LoggedOut:
			s.log.Warnf("Logged out from WhatsApp, pairing required on next start")
		}
	})
}

// MessageText pulls plain text out of a message; other content yields "".
func MessageText(m *waE2E.Message) string {
	if m == nil {
		return ""
	}
	if m.Conversation != nil {
		return *m.Conversation
	}
	if m.ExtendedTextMessage != nil && m.ExtendedTextMessage.Text != nil {
		return *m.ExtendedTextMessage.Text
	}
	return ""
}

// IsLID reports whether jid is a linked identity rather than a phone number.
func IsLID(jid types.JID) bool {
	return jid.Server == types.HiddenUserServer || (jid.Server == types.DefaultUserServer && len(jid.User) > 15)
}

// Reply sends text to chat after the configured delay.
func (s *Service) Reply(ctx context.Context, chat types.JID, text string) error {
	if s.client == nil {
		return errors.New("client not initialized")
	}

	if delay := replyDelay(s.reply, rand.Int63n); delay > 0 {
		if s.reply.ShowTyping {
			_ = s.client.SendChatPresence(ctx, chat, types.ChatPresenceComposing, types.ChatPresenceMediaText)
		}

		s.log.Debugf("Delaying reply by %s", delay)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}

		if s.reply.ShowTyping {
			_ = s.client.SendChatPresence(ctx, chat, types.ChatPresencePaused, types.ChatPresenceMediaText)
		}
	}

	_, err := s.client.SendMessage(ctx, chat, &waE2E.Message{Conversation: &text})
	return err
}

// replyDelay picks a delay in [DelayMin, DelayMax]. randN returns a value in
// [0, n).
func replyDelay(opts ReplyOptions, randN func(n int64) int64) time.Duration {
	if opts.DelayMax > opts.DelayMin {
		return opts.DelayMin + time.Duration(randN(int64(opts.DelayMax-opts.DelayMin)+1))
	}
	return opts.DelayMin
}

func (s *Service) GetClient() *whatsmeow.Client {
	return s.client
}

func (s *Service) IsLoggedIn() bool {
	return s.client != nil && s.client.Store.ID != nil
}

func (s *Service) Pair(ctx context.Context, phone string) (string, error) {
	if s.IsLoggedIn() {
		return "", errors.New("already logged in")
	}
	if !s.client.IsConnected() {
		return "", errors.New("client not connected")
	}

	phone = strings.TrimPrefix(strings.TrimSpace(phone), "+")
	return s.client.PairPhone(ctx, phone, true, whatsmeow.PairClientChrome, "Chrome (Linux)")
}

// PrintQR connects and renders login QR codes until pairing ends.
func (s *Service) PrintQR(ctx context.Context) error {
	if s.IsLoggedIn() {
		return nil
	}
	qrChan, err := s.client.GetQRChannel(ctx)
	if err != nil {
		return fmt.Errorf("failed to get QR channel: %w", err)
	}
	if err := s.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect for QR: %w", err)
	}
	for evt := range qrChan {
		if evt.Event == "code" {
			s.log.Infof("Scan the QR code below with WhatsApp (Linked Devices)")
			qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
		} else {
			s.log.Infof("Login event: %s", evt.Event)
		}
	}
	return nil
}
