package models

import "time"

type MemberRole string

const (
	RoleAdmin     MemberRole = "ADMIN"
	RoleModerator MemberRole = "MODERATOR"
	RoleGuest     MemberRole = "GUEST"
)

type ChannelType string

const (
	ChannelText  ChannelType = "TEXT"
	ChannelAudio ChannelType = "AUDIO"
	ChannelVideo ChannelType = "VIDEO"
)

// GeneralChannel is created with every server and can never be renamed
// or deleted.
const GeneralChannel = "general"

// DeletedMessagePlaceholder replaces the content of a soft-deleted message.
const DeletedMessagePlaceholder = "This message has been deleted."

type Profile struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"imageUrl"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

type Server struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name"`
	ImageURL   string    `json:"imageUrl"`
	InviteCode string    `json:"inviteCode"`
	ProfileID  string    `json:"profileId"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
}

type Member struct {
	ID        string     `json:"id,omitempty"`
	Role      MemberRole `json:"role"`
	ProfileID string     `json:"profileId"`
	ServerID  string     `json:"serverId"`
	Profile   *Profile   `json:"profile,omitempty"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt,omitempty"`
}

type Channel struct {
	ID        string      `json:"id,omitempty"`
	Name      string      `json:"name"`
	Type      ChannelType `json:"type"`
	ProfileID string      `json:"profileId"`
	ServerID  string      `json:"serverId"`
	CreatedAt time.Time   `json:"createdAt,omitempty"`
	UpdatedAt time.Time   `json:"updatedAt,omitempty"`
}

type Message struct {
	ID        string    `json:"id,omitempty"`
	Content   string    `json:"content"`
	FileURL   string    `json:"fileUrl,omitempty"`
	MemberID  string    `json:"memberId"`
	ChannelID string    `json:"channelId"`
	Deleted   bool      `json:"deleted"`
	Member    *Member   `json:"member,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

type DirectMessage struct {
	ID             string    `json:"id,omitempty"`
	Content        string    `json:"content"`
	FileURL        string    `json:"fileUrl,omitempty"`
	MemberID       string    `json:"memberId"`
	ConversationID string    `json:"conversationId"`
	Deleted        bool      `json:"deleted"`
	Member         *Member   `json:"member,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty"`
}

type Conversation struct {
	ID          string `json:"id,omitempty"`
	MemberOneID string `json:"memberOneId"`
	MemberTwoID string `json:"memberTwoId"`
}

// CanModerate reports whether the role may manage channels and other
// people's messages.
func (r MemberRole) CanModerate() bool {
	return r == RoleAdmin || r == RoleModerator
}

func ValidChannelType(t ChannelType) bool {
	switch t {
	case ChannelText, ChannelAudio, ChannelVideo:
		return true
	}
	return false
}

func ValidMemberRole(r MemberRole) bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleGuest:
		return true
	}
	return false
}
