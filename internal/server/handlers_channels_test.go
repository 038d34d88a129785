package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"concord/internal/models"
)

func TestCreateChannel(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.signIn(t, "user-1", "marie")
	guestProfile, guest := env.signIn(t, "user-2", "paul")

	server := env.createServer(t, owner, "gophers")
	_, err := env.store.CreateMember(server.ID, guestProfile.ID, models.RoleGuest)
	require.NoError(t, err)

	body := map[string]string{"name": "offtopic", "type": "TEXT"}

	rec := env.do(t, http.MethodPost, "/api/channels?serverId="+server.ID, body, guest)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/channels?serverId="+server.ID, body, owner)
	require.Equal(t, http.StatusOK, rec.Code)

	channel := new(models.Channel)
	decodeBody(t, rec, channel)
	require.Equal(t, "offtopic", channel.Name)
	require.Equal(t, models.ChannelText, channel.Type)
}

func TestCreateChannelRejectsGeneralBeforeRoleCheck(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.signIn(t, "user-1", "marie")
	guestProfile, guest := env.signIn(t, "user-2", "paul")

	server := env.createServer(t, owner, "gophers")
	_, err := env.store.CreateMember(server.ID, guestProfile.ID, models.RoleGuest)
	require.NoError(t, err)

	// Even a guest sees the 400 for the reserved name, not the 403.
	body := map[string]string{"name": "general", "type": "TEXT"}
	rec := env.do(t, http.MethodPost, "/api/channels?serverId="+server.ID, body, guest)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateChannelValidation(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.signIn(t, "user-1", "marie")
	server := env.createServer(t, owner, "gophers")

	rec := env.do(t, http.MethodPost, "/api/channels", map[string]string{"name": "x", "type": "TEXT"}, owner)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/channels?serverId="+server.ID, map[string]string{"name": "", "type": "TEXT"}, owner)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/channels?serverId="+server.ID, map[string]string{"name": "x", "type": "BOGUS"}, owner)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateChannelProtectsGeneral(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.signIn(t, "user-1", "marie")
	guestProfile, guest := env.signIn(t, "user-2", "paul")

	server := env.createServer(t, owner, "gophers")
	_, err := env.store.CreateMember(server.ID, guestProfile.ID, models.RoleGuest)
	require.NoError(t, err)

	general, err := env.store.FindChannelByName(server.ID, models.GeneralChannel)
	require.NoError(t, err)
	require.NotNil(t, general)

	rec := env.do(t, http.MethodPatch, "/api/channels/"+general.ID+"?serverId="+server.ID,
		map[string]string{"name": "renamed", "type": "TEXT"}, owner)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/channels/"+general.ID+"?serverId="+server.ID, nil, owner)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// The role gate fires before the general-channel lookup: a guest with a
	// legal body name gets the 403, not the 400.
	rec = env.do(t, http.MethodPatch, "/api/channels/"+general.ID+"?serverId="+server.ID,
		map[string]string{"name": "renamed", "type": "TEXT"}, guest)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/channels/"+general.ID+"?serverId="+server.ID, nil, guest)
	require.Equal(t, http.StatusForbidden, rec.Code)

	still, err := env.store.GetChannel(general.ID)
	require.NoError(t, err)
	require.NotNil(t, still)
}

func TestUpdateAndDeleteChannel(t *testing.T) {
	env := newTestEnv(t)
	profile, owner := env.signIn(t, "user-1", "marie")
	server := env.createServer(t, owner, "gophers")

	channel, err := env.store.CreateChannel(server.ID, profile.ID, "offtopic", models.ChannelText)
	require.NoError(t, err)

	rec := env.do(t, http.MethodPatch, "/api/channels/"+channel.ID+"?serverId="+server.ID,
		map[string]string{"name": "random", "type": "AUDIO"}, owner)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := new(models.Channel)
	decodeBody(t, rec, updated)
	require.Equal(t, "random", updated.Name)
	require.Equal(t, models.ChannelAudio, updated.Type)

	rec = env.do(t, http.MethodDelete, "/api/channels/"+channel.ID+"?serverId="+server.ID, nil, owner)
	require.Equal(t, http.StatusOK, rec.Code)

	gone, err := env.store.GetChannel(channel.ID)
	require.NoError(t, err)
	require.Nil(t, gone)
}
