package database

import "concord/internal/models"

func (s *service) GetConversation(id string) (*models.Conversation, error) {
	return queryOne[models.Conversation](s.db, "SELECT * FROM $conversationId LIMIT 1", map[string]interface{}{
		"conversationId": RecordID("conversations", id),
	})
}

// FindConversation matches the member pair in either ordering.
func (s *service) FindConversation(memberOneID, memberTwoID string) (*models.Conversation, error) {
	return queryOne[models.Conversation](s.db, `
      SELECT * FROM conversations
      WHERE (memberOneId = $one AND memberTwoId = $two)
         OR (memberOneId = $two AND memberTwoId = $one)
      LIMIT 1;
    `, map[string]interface{}{
		"one": RecordID("members", memberOneID),
		"two": RecordID("members", memberTwoID),
	})
}

func (s *service) CreateConversation(memberOneID, memberTwoID string) (*models.Conversation, error) {
	return queryOnly[models.Conversation](s.db, `
      CREATE ONLY conversations CONTENT {
        memberOneId: $one,
        memberTwoId: $two,
      } RETURN AFTER;
    `, map[string]interface{}{
		"one": RecordID("members", memberOneID),
		"two": RecordID("members", memberTwoID),
	})
}
