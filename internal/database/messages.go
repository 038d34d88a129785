package database

import (
	"time"

	"concord/internal/models"
)

// hydrateMember resolves a message's member and that member's profile with
// two point lookups. A missing document at either level leaves the relation
// nil instead of failing the whole request.
func (s *service) hydrateMember(memberID string) *models.Member {
	member, err := s.GetMember(memberID)
	if err != nil || member == nil {
		return nil
	}

	if profile, err := s.GetProfileByID(member.ProfileID); err == nil {
		member.Profile = profile
	}

	return member
}

func (s *service) GetMessage(id string) (*models.Message, error) {
	return queryOne[models.Message](s.db, "SELECT * FROM $messageId LIMIT 1", map[string]interface{}{
		"messageId": RecordID("messages", id),
	})
}

func (s *service) CreateMessage(channelID, memberID, content, fileURL string) (*models.Message, error) {
	message, err := queryOnly[models.Message](s.db, `
      CREATE ONLY type::thing("messages", $id) CONTENT {
        content: $content,
        fileUrl: $fileUrl,
        memberId: $memberId,
        channelId: $channelId,
        deleted: false,
        createdAt: time::now(),
        updatedAt: time::now(),
      } RETURN AFTER;
    `, map[string]interface{}{
		"id":        NewMessageID(),
		"content":   content,
		"fileUrl":   fileURL,
		"memberId":  memberID,
		"channelId": RecordID("channels", channelID),
	})
	if err != nil {
		return nil, err
	}

	message.Member = s.hydrateMember(message.MemberID)
	return message, nil
}

func (s *service) UpdateMessageContent(id, content string) (*models.Message, error) {
	message, err := queryOnly[models.Message](s.db, `
      UPDATE ONLY $messageId MERGE {
        content: $content,
        updatedAt: time::now(),
      } RETURN AFTER;
    `, map[string]interface{}{
		"messageId": RecordID("messages", id),
		"content":   content,
	})
	if err != nil {
		return nil, err
	}

	message.Member = s.hydrateMember(message.MemberID)
	return message, nil
}

// SoftDeleteMessage keeps the document but blanks it: the content becomes a
// fixed placeholder and the file URL is cleared.
func (s *service) SoftDeleteMessage(id string) (*models.Message, error) {
	message, err := queryOnly[models.Message](s.db, `
      UPDATE ONLY $messageId MERGE {
        content: $content,
        fileUrl: "",
        deleted: true,
        updatedAt: time::now(),
      } RETURN AFTER;
    `, map[string]interface{}{
		"messageId": RecordID("messages", id),
		"content":   models.DeletedMessagePlaceholder,
	})
	if err != nil {
		return nil, err
	}

	message.Member = s.hydrateMember(message.MemberID)
	return message, nil
}

func (s *service) ListChannelMessages(channelID, cursor string, limit int) ([]models.Message, error) {
	params := map[string]interface{}{
		"channelId": RecordID("channels", channelID),
		"limit":     limit,
	}

	sql := `SELECT * FROM messages WHERE channelId = $channelId ORDER BY createdAt DESC LIMIT $limit;`

	if cursor != "" {
		before, err := s.createdAtOf(RecordID("messages", cursor))
		if err != nil {
			return nil, err
		}
		if before == nil {
			return []models.Message{}, nil
		}
		params["before"] = before.UTC().Format(time.RFC3339Nano)
		sql = `SELECT * FROM messages WHERE channelId = $channelId AND createdAt < type::datetime($before) ORDER BY createdAt DESC LIMIT $limit;`
	}

	messages, err := queryAll[models.Message](s.db, sql, params)
	if err != nil {
		return nil, err
	}

	for i := range messages {
		messages[i].Member = s.hydrateMember(messages[i].MemberID)
	}

	return messages, nil
}

// createdAtOf looks up the creation timestamp of a cursor document.
func (s *service) createdAtOf(recordID string) (*time.Time, error) {
	type stamped struct {
		CreatedAt time.Time `json:"createdAt"`
	}

	row, err := queryOne[stamped](s.db, "SELECT createdAt FROM $id LIMIT 1", map[string]interface{}{
		"id": recordID,
	})
	if err != nil || row == nil {
		return nil, err
	}

	return &row.CreatedAt, nil
}
