package memdb

import (
	"sort"

	"concord/internal/database"
	"concord/internal/models"
)

func (s *Store) hydrateMember(memberID string) *models.Member {
	m, ok := s.members[memberID]
	if !ok {
		return nil
	}
	member := m
	if p, ok := s.profiles[member.ProfileID]; ok {
		profile := p
		member.Profile = &profile
	}
	return &member
}

func (s *Store) GetMessage(id string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.messages[database.RecordID("messages", id)]; ok {
		return &m, nil
	}
	return nil, nil
}

func (s *Store) CreateMessage(channelID, memberID, content, fileURL string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.stamp()
	message := models.Message{
		ID:        "messages:" + database.NewMessageID(),
		Content:   content,
		FileURL:   fileURL,
		MemberID:  memberID,
		ChannelID: database.RecordID("channels", channelID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.messages[message.ID] = message

	out := message
	out.Member = s.hydrateMember(memberID)
	return &out, nil
}

func (s *Store) UpdateMessageContent(id, content string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := database.RecordID("messages", id)
	m, ok := s.messages[key]
	if !ok {
		return nil, nil
	}
	m.Content = content
	m.UpdatedAt = s.stamp()
	s.messages[key] = m

	out := m
	out.Member = s.hydrateMember(m.MemberID)
	return &out, nil
}

func (s *Store) SoftDeleteMessage(id string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := database.RecordID("messages", id)
	m, ok := s.messages[key]
	if !ok {
		return nil, nil
	}
	m.Content = models.DeletedMessagePlaceholder
	m.FileURL = ""
	m.Deleted = true
	m.UpdatedAt = s.stamp()
	s.messages[key] = m

	out := m
	out.Member = s.hydrateMember(m.MemberID)
	return &out, nil
}

func (s *Store) ListChannelMessages(channelID, cursor string, limit int) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := database.RecordID("channels", channelID)
	var page []models.Message
	for _, m := range s.messages {
		if m.ChannelID == key {
			page = append(page, m)
		}
	}
	sort.Slice(page, func(i, j int) bool { return page[i].CreatedAt.After(page[j].CreatedAt) })

	if cursor != "" {
		c, ok := s.messages[database.RecordID("messages", cursor)]
		if !ok {
			return []models.Message{}, nil
		}
		cut := 0
		for i := range page {
			if page[i].CreatedAt.Before(c.CreatedAt) {
				cut = i
				break
			}
			cut = len(page)
		}
		page = page[cut:]
	}

	if len(page) > limit {
		page = page[:limit]
	}
	for i := range page {
		page[i].Member = s.hydrateMember(page[i].MemberID)
	}
	return page, nil
}

func (s *Store) GetDirectMessage(id string) (*models.DirectMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.directMessages[database.RecordID("directMessages", id)]; ok {
		return &m, nil
	}
	return nil, nil
}

func (s *Store) CreateDirectMessage(conversationID, memberID, content, fileURL string) (*models.DirectMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.stamp()
	message := models.DirectMessage{
		ID:             "directMessages:" + database.NewMessageID(),
		Content:        content,
		FileURL:        fileURL,
		MemberID:       memberID,
		ConversationID: database.RecordID("conversations", conversationID),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.directMessages[message.ID] = message

	out := message
	out.Member = s.hydrateMember(memberID)
	return &out, nil
}

func (s *Store) UpdateDirectMessageContent(id, content string) (*models.DirectMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := database.RecordID("directMessages", id)
	m, ok := s.directMessages[key]
	if !ok {
		return nil, nil
	}
	m.Content = content
	m.UpdatedAt = s.stamp()
	s.directMessages[key] = m

	out := m
	out.Member = s.hydrateMember(m.MemberID)
	return &out, nil
}

func (s *Store) SoftDeleteDirectMessage(id string) (*models.DirectMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := database.RecordID("directMessages", id)
	m, ok := s.directMessages[key]
	if !ok {
		return nil, nil
	}
	m.Content = models.DeletedMessagePlaceholder
	m.FileURL = ""
	m.Deleted = true
	m.UpdatedAt = s.stamp()
	s.directMessages[key] = m

	out := m
	out.Member = s.hydrateMember(m.MemberID)
	return &out, nil
}

func (s *Store) ListDirectMessages(conversationID, cursor string, limit int) ([]models.DirectMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := database.RecordID("conversations", conversationID)
	var page []models.DirectMessage
	for _, m := range s.directMessages {
		if m.ConversationID == key {
			page = append(page, m)
		}
	}
	sort.Slice(page, func(i, j int) bool { return page[i].CreatedAt.After(page[j].CreatedAt) })

	if cursor != "" {
		c, ok := s.directMessages[database.RecordID("directMessages", cursor)]
		if !ok {
			return []models.DirectMessage{}, nil
		}
		cut := 0
		for i := range page {
			if page[i].CreatedAt.Before(c.CreatedAt) {
				cut = i
				break
			}
			cut = len(page)
		}
		page = page[cut:]
	}

	if len(page) > limit {
		page = page[:limit]
	}
	for i := range page {
		page[i].Member = s.hydrateMember(page[i].MemberID)
	}
	return page, nil
}
