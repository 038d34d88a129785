package database

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/surrealdb/surrealdb.go"

	"concord/internal/models"
)

// Service is the document-store adapter. Every accessor is a named, typed
// query against one collection; lookups that match nothing return (nil, nil),
// never an error. Create and update stamp createdAt/updatedAt on the store
// side, and message accessors hydrate member and profile relations with
// sequential point lookups after the primary fetch.
//
// Multi-document operations (CreateServerWithDefaults, DeleteServer) run as
// an ordered sequence of independent writes. Callers must not assume
// atomicity across them.
type Service interface {
	// Profiles
	GetProfileByID(id string) (*models.Profile, error)
	GetProfileByUserID(userID string) (*models.Profile, error)
	CreateProfile(profile models.Profile) (*models.Profile, error)

	// Servers
	GetServer(id string) (*models.Server, error)
	GetServerByInviteCode(code string) (*models.Server, error)
	ListServersByProfile(profileID string) ([]models.Server, error)
	CreateServerWithDefaults(profileID, name, imageURL, inviteCode string) (*models.Server, error)
	UpdateServer(id, name, imageURL string) (*models.Server, error)
	RotateInviteCode(id, code string) (*models.Server, error)
	DeleteServer(id string) error

	// Members
	GetMember(id string) (*models.Member, error)
	FindMember(serverID, profileID string) (*models.Member, error)
	CreateMember(serverID, profileID string, role models.MemberRole) (*models.Member, error)
	UpdateMemberRole(id string, role models.MemberRole) (*models.Member, error)
	DeleteMember(id string) error

	// Channels
	GetChannel(id string) (*models.Channel, error)
	CreateChannel(serverID, profileID, name string, channelType models.ChannelType) (*models.Channel, error)
	UpdateChannel(id, name string, channelType models.ChannelType) (*models.Channel, error)
	DeleteChannel(id string) error

	// Messages
	GetMessage(id string) (*models.Message, error)
	CreateMessage(channelID, memberID, content, fileURL string) (*models.Message, error)
	UpdateMessageContent(id, content string) (*models.Message, error)
	SoftDeleteMessage(id string) (*models.Message, error)
	ListChannelMessages(channelID, cursor string, limit int) ([]models.Message, error)

	// Direct messages
	GetDirectMessage(id string) (*models.DirectMessage, error)
	CreateDirectMessage(conversationID, memberID, content, fileURL string) (*models.DirectMessage, error)
	UpdateDirectMessageContent(id, content string) (*models.DirectMessage, error)
	SoftDeleteDirectMessage(id string) (*models.DirectMessage, error)
	ListDirectMessages(conversationID, cursor string, limit int) ([]models.DirectMessage, error)

	// Conversations
	GetConversation(id string) (*models.Conversation, error)
	FindConversation(memberOneID, memberTwoID string) (*models.Conversation, error)
	CreateConversation(memberOneID, memberTwoID string) (*models.Conversation, error)
}

type service struct {
	db *surrealdb.DB
}

type Options struct {
	URL       string
	Username  string
	Password  string
	Namespace string
	Database  string
}

func New(opts Options) (Service, error) {
	db, err := surrealdb.New(opts.URL)
	if err != nil {
		return nil, err
	}

	if _, err := db.Signin(map[string]interface{}{
		"user": opts.Username,
		"pass": opts.Password,
	}); err != nil {
		return nil, err
	}

	if _, err := db.Use(opts.Namespace, opts.Database); err != nil {
		return nil, err
	}

	return &service{db: db}, nil
}

// RecordID joins a table name and a bare identifier into a full record id.
// Identifiers that already carry a table prefix pass through unchanged.
func RecordID(table, id string) string {
	if id == "" || strings.Contains(id, ":") {
		return id
	}
	return table + ":" + id
}

// BareID strips the table prefix from a full record id.
func BareID(id string) string {
	if i := strings.Index(id, ":"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// NewMessageID mints a time-ordered identifier for a message document.
// Lexicographic order of these ids follows creation order, which the
// cursor pagination depends on.
func NewMessageID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
