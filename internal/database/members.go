package database

import "concord/internal/models"

func (s *service) GetMember(id string) (*models.Member, error) {
	return queryOne[models.Member](s.db, "SELECT * FROM $memberId LIMIT 1", map[string]interface{}{
		"memberId": RecordID("members", id),
	})
}

func (s *service) FindMember(serverID, profileID string) (*models.Member, error) {
	return queryOne[models.Member](s.db, `
      SELECT * FROM members WHERE serverId = $serverId AND profileId = $profileId LIMIT 1;
    `, map[string]interface{}{
		"serverId":  RecordID("servers", serverID),
		"profileId": profileID,
	})
}

func (s *service) CreateMember(serverID, profileID string, role models.MemberRole) (*models.Member, error) {
	return queryOnly[models.Member](s.db, `
      CREATE ONLY members CONTENT {
        role: $role,
        profileId: $profileId,
        serverId: $serverId,
        createdAt: time::now(),
        updatedAt: time::now(),
      } RETURN AFTER;
    `, map[string]interface{}{
		"role":      string(role),
		"profileId": profileID,
		"serverId":  RecordID("servers", serverID),
	})
}

func (s *service) UpdateMemberRole(id string, role models.MemberRole) (*models.Member, error) {
	return queryOnly[models.Member](s.db, `
      UPDATE ONLY $memberId MERGE {
        role: $role,
        updatedAt: time::now(),
      } RETURN AFTER;
    `, map[string]interface{}{
		"memberId": RecordID("members", id),
		"role":     string(role),
	})
}

func (s *service) DeleteMember(id string) error {
	return exec(s.db, "DELETE $memberId", map[string]interface{}{
		"memberId": RecordID("members", id),
	})
}
