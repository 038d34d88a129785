package database

import "concord/internal/models"

func (s *service) GetServer(id string) (*models.Server, error) {
	return queryOne[models.Server](s.db, "SELECT * FROM $serverId LIMIT 1", map[string]interface{}{
		"serverId": RecordID("servers", id),
	})
}

func (s *service) GetServerByInviteCode(code string) (*models.Server, error) {
	return queryOne[models.Server](s.db, "SELECT * FROM servers WHERE inviteCode = $inviteCode LIMIT 1", map[string]interface{}{
		"inviteCode": code,
	})
}

func (s *service) ListServersByProfile(profileID string) ([]models.Server, error) {
	return queryAll[models.Server](s.db, `
      SELECT * FROM servers WHERE id IN (SELECT VALUE serverId FROM members WHERE profileId = $profileId) ORDER BY createdAt ASC;
    `, map[string]interface{}{
		"profileId": profileID,
	})
}

// CreateServerWithDefaults writes the server, then its "general" text
// channel, then the owner's ADMIN member, as three independent writes.
// A failure partway through is returned to the caller; earlier writes are
// not rolled back.
func (s *service) CreateServerWithDefaults(profileID, name, imageURL, inviteCode string) (*models.Server, error) {
	server, err := queryOnly[models.Server](s.db, `
      CREATE ONLY servers CONTENT {
        name: $name,
        imageUrl: $imageUrl,
        inviteCode: $inviteCode,
        profileId: $profileId,
        createdAt: time::now(),
        updatedAt: time::now(),
      } RETURN AFTER;
    `, map[string]interface{}{
		"name":       name,
		"imageUrl":   imageURL,
		"inviteCode": inviteCode,
		"profileId":  profileID,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.CreateChannel(server.ID, profileID, models.GeneralChannel, models.ChannelText); err != nil {
		return nil, err
	}

	if _, err := s.CreateMember(server.ID, profileID, models.RoleAdmin); err != nil {
		return nil, err
	}

	return server, nil
}

func (s *service) UpdateServer(id, name, imageURL string) (*models.Server, error) {
	return queryOnly[models.Server](s.db, `
      UPDATE ONLY $serverId MERGE {
        name: $name,
        imageUrl: $imageUrl,
        updatedAt: time::now(),
      } RETURN AFTER;
    `, map[string]interface{}{
		"serverId": RecordID("servers", id),
		"name":     name,
		"imageUrl": imageURL,
	})
}

func (s *service) RotateInviteCode(id, code string) (*models.Server, error) {
	return queryOnly[models.Server](s.db, `
      UPDATE ONLY $serverId MERGE {
        inviteCode: $inviteCode,
        updatedAt: time::now(),
      } RETURN AFTER;
    `, map[string]interface{}{
		"serverId":   RecordID("servers", id),
		"inviteCode": code,
	})
}

// DeleteServer removes the server and cascades to its members, channels and
// those channels' messages. The deletes are ordered independent writes.
func (s *service) DeleteServer(id string) error {
	serverID := RecordID("servers", id)

	err := exec(s.db, `
      DELETE messages WHERE channelId IN (SELECT VALUE id FROM channels WHERE serverId = $serverId);
    `, map[string]interface{}{
		"serverId": serverID,
	})
	if err != nil {
		return err
	}

	err = exec(s.db, "DELETE channels WHERE serverId = $serverId", map[string]interface{}{
		"serverId": serverID,
	})
	if err != nil {
		return err
	}

	err = exec(s.db, "DELETE members WHERE serverId = $serverId", map[string]interface{}{
		"serverId": serverID,
	})
	if err != nil {
		return err
	}

	return exec(s.db, "DELETE $serverId", map[string]interface{}{
		"serverId": serverID,
	})
}
