// Package memdb is an in-memory implementation of database.Service. It backs
// the handler tests and is handy for running the API without a SurrealDB
// instance.
package memdb

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"concord/internal/database"
	"concord/internal/models"
)

type Store struct {
	mu sync.Mutex

	profiles       map[string]models.Profile
	servers        map[string]models.Server
	members        map[string]models.Member
	channels       map[string]models.Channel
	messages       map[string]models.Message
	directMessages map[string]models.DirectMessage
	conversations  map[string]models.Conversation

	lastStamp time.Time
}

var _ database.Service = (*Store)(nil)

func New() *Store {
	return &Store{
		profiles:       make(map[string]models.Profile),
		servers:        make(map[string]models.Server),
		members:        make(map[string]models.Member),
		channels:       make(map[string]models.Channel),
		messages:       make(map[string]models.Message),
		directMessages: make(map[string]models.DirectMessage),
		conversations:  make(map[string]models.Conversation),
	}
}

func newID(table string) string {
	return table + ":" + uuid.NewString()
}

// stamp returns a strictly increasing timestamp so list ordering stays
// deterministic even when writes land within the same clock tick.
func (s *Store) stamp() time.Time {
	now := time.Now().UTC()
	if !now.After(s.lastStamp) {
		now = s.lastStamp.Add(time.Microsecond)
	}
	s.lastStamp = now
	return now
}

// Profiles

func (s *Store) GetProfileByID(id string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.profiles[database.RecordID("profiles", id)]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *Store) GetProfileByUserID(userID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.profiles {
		if p.UserID == userID {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateProfile(profile models.Profile) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.stamp()
	profile.ID = newID("profiles")
	profile.CreatedAt = now
	profile.UpdatedAt = now
	s.profiles[profile.ID] = profile
	return &profile, nil
}

// Servers

func (s *Store) GetServer(id string) (*models.Server, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if srv, ok := s.servers[database.RecordID("servers", id)]; ok {
		return &srv, nil
	}
	return nil, nil
}

func (s *Store) GetServerByInviteCode(code string) (*models.Server, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, srv := range s.servers {
		if srv.InviteCode == code {
			srv := srv
			return &srv, nil
		}
	}
	return nil, nil
}

func (s *Store) ListServersByProfile(profileID string) ([]models.Server, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Server
	for _, m := range s.members {
		if m.ProfileID == profileID {
			if srv, ok := s.servers[m.ServerID]; ok {
				out = append(out, srv)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) CreateServerWithDefaults(profileID, name, imageURL, inviteCode string) (*models.Server, error) {
	s.mu.Lock()
	now := s.stamp()
	server := models.Server{
		ID:         newID("servers"),
		Name:       name,
		ImageURL:   imageURL,
		InviteCode: inviteCode,
		ProfileID:  profileID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.servers[server.ID] = server
	s.mu.Unlock()

	if _, err := s.CreateChannel(server.ID, profileID, models.GeneralChannel, models.ChannelText); err != nil {
		return nil, err
	}
	if _, err := s.CreateMember(server.ID, profileID, models.RoleAdmin); err != nil {
		return nil, err
	}

	return &server, nil
}

func (s *Store) UpdateServer(id, name, imageURL string) (*models.Server, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := database.RecordID("servers", id)
	srv, ok := s.servers[key]
	if !ok {
		return nil, nil
	}
	srv.Name = name
	srv.ImageURL = imageURL
	srv.UpdatedAt = s.stamp()
	s.servers[key] = srv
	return &srv, nil
}

func (s *Store) RotateInviteCode(id, code string) (*models.Server, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := database.RecordID("servers", id)
	srv, ok := s.servers[key]
	if !ok {
		return nil, nil
	}
	srv.InviteCode = code
	srv.UpdatedAt = s.stamp()
	s.servers[key] = srv
	return &srv, nil
}

func (s *Store) DeleteServer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := database.RecordID("servers", id)
	for cid, c := range s.channels {
		if c.ServerID == key {
			for mid, m := range s.messages {
				if m.ChannelID == cid {
					delete(s.messages, mid)
				}
			}
			delete(s.channels, cid)
		}
	}
	for mid, m := range s.members {
		if m.ServerID == key {
			delete(s.members, mid)
		}
	}
	delete(s.servers, key)
	return nil
}

// Members

func (s *Store) GetMember(id string) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.members[database.RecordID("members", id)]; ok {
		return &m, nil
	}
	return nil, nil
}

func (s *Store) FindMember(serverID, profileID string) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := database.RecordID("servers", serverID)
	for _, m := range s.members {
		if m.ServerID == key && m.ProfileID == profileID {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateMember(serverID, profileID string, role models.MemberRole) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.stamp()
	member := models.Member{
		ID:        newID("members"),
		Role:      role,
		ProfileID: profileID,
		ServerID:  database.RecordID("servers", serverID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.members[member.ID] = member
	return &member, nil
}

func (s *Store) UpdateMemberRole(id string, role models.MemberRole) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := database.RecordID("members", id)
	m, ok := s.members[key]
	if !ok {
		return nil, nil
	}
	m.Role = role
	m.UpdatedAt = s.stamp()
	s.members[key] = m
	return &m, nil
}

func (s *Store) DeleteMember(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.members, database.RecordID("members", id))
	return nil
}

// Channels

func (s *Store) GetChannel(id string) (*models.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.channels[database.RecordID("channels", id)]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *Store) CreateChannel(serverID, profileID, name string, channelType models.ChannelType) (*models.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.stamp()
	channel := models.Channel{
		ID:        newID("channels"),
		Name:      name,
		Type:      channelType,
		ProfileID: profileID,
		ServerID:  database.RecordID("servers", serverID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.channels[channel.ID] = channel
	return &channel, nil
}

// FindChannelByName is a fixture helper for tests; it is not part of
// database.Service.
func (s *Store) FindChannelByName(serverID, name string) (*models.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := database.RecordID("servers", serverID)
	for _, c := range s.channels {
		if c.ServerID == key && c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateChannel(id, name string, channelType models.ChannelType) (*models.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := database.RecordID("channels", id)
	c, ok := s.channels[key]
	if !ok {
		return nil, nil
	}
	c.Name = name
	c.Type = channelType
	c.UpdatedAt = s.stamp()
	s.channels[key] = c
	return &c, nil
}

func (s *Store) DeleteChannel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := database.RecordID("channels", id)
	for mid, m := range s.messages {
		if m.ChannelID == key {
			delete(s.messages, mid)
		}
	}
	delete(s.channels, key)
	return nil
}

// Conversations

func (s *Store) GetConversation(id string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.conversations[database.RecordID("conversations", id)]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *Store) FindConversation(memberOneID, memberTwoID string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	one := database.RecordID("members", memberOneID)
	two := database.RecordID("members", memberTwoID)
	for _, c := range s.conversations {
		if (c.MemberOneID == one && c.MemberTwoID == two) ||
			(c.MemberOneID == two && c.MemberTwoID == one) {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateConversation(memberOneID, memberTwoID string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conversation := models.Conversation{
		ID:          newID("conversations"),
		MemberOneID: database.RecordID("members", memberOneID),
		MemberTwoID: database.RecordID("members", memberTwoID),
	}
	s.conversations[conversation.ID] = conversation
	return &conversation, nil
}
