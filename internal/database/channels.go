package database

import "concord/internal/models"

func (s *service) GetChannel(id string) (*models.Channel, error) {
	return queryOne[models.Channel](s.db, "SELECT * FROM $channelId LIMIT 1", map[string]interface{}{
		"channelId": RecordID("channels", id),
	})
}

func (s *service) CreateChannel(serverID, profileID, name string, channelType models.ChannelType) (*models.Channel, error) {
	return queryOnly[models.Channel](s.db, `
      CREATE ONLY channels CONTENT {
        name: $name,
        type: $type,
        profileId: $profileId,
        serverId: $serverId,
        createdAt: time::now(),
        updatedAt: time::now(),
      } RETURN AFTER;
    `, map[string]interface{}{
		"name":      name,
		"type":      string(channelType),
		"profileId": profileID,
		"serverId":  RecordID("servers", serverID),
	})
}

func (s *service) UpdateChannel(id, name string, channelType models.ChannelType) (*models.Channel, error) {
	return queryOnly[models.Channel](s.db, `
      UPDATE ONLY $channelId MERGE {
        name: $name,
        type: $type,
        updatedAt: time::now(),
      } RETURN AFTER;
    `, map[string]interface{}{
		"channelId": RecordID("channels", id),
		"name":      name,
		"type":      string(channelType),
	})
}

func (s *service) DeleteChannel(id string) error {
	channelID := RecordID("channels", id)

	err := exec(s.db, "DELETE messages WHERE channelId = $channelId", map[string]interface{}{
		"channelId": channelID,
	})
	if err != nil {
		return err
	}

	return exec(s.db, "DELETE $channelId", map[string]interface{}{
		"channelId": channelID,
	})
}
