package database

import (
	"time"

	"concord/internal/models"
)

func (s *service) GetDirectMessage(id string) (*models.DirectMessage, error) {
	return queryOne[models.DirectMessage](s.db, "SELECT * FROM $messageId LIMIT 1", map[string]interface{}{
		"messageId": RecordID("directMessages", id),
	})
}

func (s *service) CreateDirectMessage(conversationID, memberID, content, fileURL string) (*models.DirectMessage, error) {
	message, err := queryOnly[models.DirectMessage](s.db, `
      CREATE ONLY type::thing("directMessages", $id) CONTENT {
        content: $content,
        fileUrl: $fileUrl,
        memberId: $memberId,
        conversationId: $conversationId,
        deleted: false,
        createdAt: time::now(),
        updatedAt: time::now(),
      } RETURN AFTER;
    `, map[string]interface{}{
		"id":             NewMessageID(),
		"content":        content,
		"fileUrl":        fileURL,
		"memberId":       memberID,
		"conversationId": RecordID("conversations", conversationID),
	})
	if err != nil {
		return nil, err
	}

	message.Member = s.hydrateMember(message.MemberID)
	return message, nil
}

func (s *service) UpdateDirectMessageContent(id, content string) (*models.DirectMessage, error) {
	message, err := queryOnly[models.DirectMessage](s.db, `
      UPDATE ONLY $messageId MERGE {
        content: $content,
        updatedAt: time::now(),
      } RETURN AFTER;
    `, map[string]interface{}{
		"messageId": RecordID("directMessages", id),
		"content":   content,
	})
	if err != nil {
		return nil, err
	}

	message.Member = s.hydrateMember(message.MemberID)
	return message, nil
}

func (s *service) SoftDeleteDirectMessage(id string) (*models.DirectMessage, error) {
	message, err := queryOnly[models.DirectMessage](s.db, `
      UPDATE ONLY $messageId MERGE {
        content: $content,
        fileUrl: "",
        deleted: true,
        updatedAt: time::now(),
      } RETURN AFTER;
    `, map[string]interface{}{
		"messageId": RecordID("directMessages", id),
		"content":   models.DeletedMessagePlaceholder,
	})
	if err != nil {
		return nil, err
	}

	message.Member = s.hydrateMember(message.MemberID)
	return message, nil
}

func (s *service) ListDirectMessages(conversationID, cursor string, limit int) ([]models.DirectMessage, error) {
	params := map[string]interface{}{
		"conversationId": RecordID("conversations", conversationID),
		"limit":          limit,
	}

	sql := `SELECT * FROM directMessages WHERE conversationId = $conversationId ORDER BY createdAt DESC LIMIT $limit;`

	if cursor != "" {
		before, err := s.createdAtOf(RecordID("directMessages", cursor))
		if err != nil {
			return nil, err
		}
		if before == nil {
			return []models.DirectMessage{}, nil
		}
		params["before"] = before.UTC().Format(time.RFC3339Nano)
		sql = `SELECT * FROM directMessages WHERE conversationId = $conversationId AND createdAt < type::datetime($before) ORDER BY createdAt DESC LIMIT $limit;`
	}

	messages, err := queryAll[models.DirectMessage](s.db, sql, params)
	if err != nil {
		return nil, err
	}

	for i := range messages {
		messages[i].Member = s.hydrateMember(messages[i].MemberID)
	}

	return messages, nil
}
