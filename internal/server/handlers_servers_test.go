package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"concord/internal/models"
)

func TestCreateServerWithDefaults(t *testing.T) {
	env := newTestEnv(t)
	profile, cookie := env.signIn(t, "user-1", "marie")

	server := env.createServer(t, cookie, "gophers")
	require.Equal(t, profile.ID, server.ProfileID)
	require.NotEmpty(t, server.InviteCode)

	member, err := env.store.FindMember(server.ID, profile.ID)
	require.NoError(t, err)
	require.NotNil(t, member)
	require.Equal(t, models.RoleAdmin, member.Role)

	rec := env.do(t, http.MethodGet, "/api/servers", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var listing struct {
		Servers []models.Server `json:"servers"`
	}
	decodeBody(t, rec, &listing)
	require.Len(t, listing.Servers, 1)
	require.Equal(t, server.ID, listing.Servers[0].ID)
}

func TestUpdateServerOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.signIn(t, "user-1", "marie")
	_, intruder := env.signIn(t, "user-2", "paul")

	server := env.createServer(t, owner, "gophers")

	rec := env.do(t, http.MethodPatch, "/api/servers/"+server.ID, map[string]string{"name": "hijacked"}, intruder)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPatch, "/api/servers/"+server.ID, map[string]string{"name": "renamed"}, owner)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := new(models.Server)
	decodeBody(t, rec, updated)
	require.Equal(t, "renamed", updated.Name)

	// The body is applied as sent; an absent name is written through too.
	rec = env.do(t, http.MethodPatch, "/api/servers/"+server.ID, map[string]string{"imageUrl": "https://cdn.test/s.png"}, owner)
	require.Equal(t, http.StatusOK, rec.Code)

	decodeBody(t, rec, updated)
	require.Equal(t, "https://cdn.test/s.png", updated.ImageURL)
	require.Empty(t, updated.Name)
}

func TestDeleteServerCascades(t *testing.T) {
	env := newTestEnv(t)
	profile, owner := env.signIn(t, "user-1", "marie")
	_, other := env.signIn(t, "user-2", "paul")

	server := env.createServer(t, owner, "gophers")

	rec := env.do(t, http.MethodDelete, "/api/servers/"+server.ID, nil, other)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/servers/"+server.ID, nil, owner)
	require.Equal(t, http.StatusOK, rec.Code)

	gone, err := env.store.GetServer(server.ID)
	require.NoError(t, err)
	require.Nil(t, gone)

	member, err := env.store.FindMember(server.ID, profile.ID)
	require.NoError(t, err)
	require.Nil(t, member)
}

func TestRotateInviteCode(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.signIn(t, "user-1", "marie")

	server := env.createServer(t, owner, "gophers")

	rec := env.do(t, http.MethodPatch, "/api/servers/"+server.ID+"/invite-code", nil, owner)
	require.Equal(t, http.StatusOK, rec.Code)

	rotated := new(models.Server)
	decodeBody(t, rec, rotated)
	require.NotEmpty(t, rotated.InviteCode)
	require.NotEqual(t, server.InviteCode, rotated.InviteCode)
}

func TestLeaveServer(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.signIn(t, "user-1", "marie")
	guestProfile, guest := env.signIn(t, "user-2", "paul")
	_, outsider := env.signIn(t, "user-3", "nina")

	server := env.createServer(t, owner, "gophers")
	_, err := env.store.CreateMember(server.ID, guestProfile.ID, models.RoleGuest)
	require.NoError(t, err)

	rec := env.do(t, http.MethodPatch, "/api/servers/"+server.ID+"/leave", nil, owner)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPatch, "/api/servers/"+server.ID+"/leave", nil, outsider)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPatch, "/api/servers/"+server.ID+"/leave", nil, guest)
	require.Equal(t, http.StatusOK, rec.Code)

	member, err := env.store.FindMember(server.ID, guestProfile.ID)
	require.NoError(t, err)
	require.Nil(t, member)
}
