package database

import "concord/internal/models"

func (s *service) GetProfileByID(id string) (*models.Profile, error) {
	return queryOne[models.Profile](s.db, "SELECT * FROM $profileId LIMIT 1", map[string]interface{}{
		"profileId": RecordID("profiles", id),
	})
}

func (s *service) GetProfileByUserID(userID string) (*models.Profile, error) {
	return queryOne[models.Profile](s.db, "SELECT * FROM profiles WHERE userId = $userId LIMIT 1", map[string]interface{}{
		"userId": userID,
	})
}

func (s *service) CreateProfile(profile models.Profile) (*models.Profile, error) {
	return queryOnly[models.Profile](s.db, `
      CREATE ONLY profiles CONTENT {
        userId: $userId,
        name: $name,
        imageUrl: $imageUrl,
        email: $email,
        createdAt: time::now(),
        updatedAt: time::now(),
      } RETURN AFTER;
    `, map[string]interface{}{
		"userId":   profile.UserID,
		"name":     profile.Name,
		"imageUrl": profile.ImageURL,
		"email":    profile.Email,
	})
}
