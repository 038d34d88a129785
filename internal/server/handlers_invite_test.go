package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"concord/internal/database"
	"concord/internal/models"
)

func TestJoinByInvite(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.signIn(t, "user-1", "marie")
	joinerProfile, joiner := env.signIn(t, "user-2", "paul")

	server := env.createServer(t, owner, "gophers")
	serverPage := "/servers/" + database.BareID(server.ID)

	rec := env.do(t, http.MethodGet, "/invite/"+server.InviteCode, nil, joiner)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, serverPage, rec.Header().Get("Location"))

	member, err := env.store.FindMember(server.ID, joinerProfile.ID)
	require.NoError(t, err)
	require.NotNil(t, member)
	require.Equal(t, models.RoleGuest, member.Role)

	// Following the link again is a no-op redirect.
	rec = env.do(t, http.MethodGet, "/invite/"+server.InviteCode, nil, joiner)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, serverPage, rec.Header().Get("Location"))

	again, err := env.store.FindMember(server.ID, joinerProfile.ID)
	require.NoError(t, err)
	require.Equal(t, member.ID, again.ID)
}

func TestJoinByInviteUnknownCode(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.signIn(t, "user-1", "marie")

	rec := env.do(t, http.MethodGet, "/invite/not-a-code", nil, cookie)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
}

func TestJoinByInviteRotatedCodeStopsWorking(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.signIn(t, "user-1", "marie")
	_, joiner := env.signIn(t, "user-2", "paul")

	server := env.createServer(t, owner, "gophers")
	oldCode := server.InviteCode

	rec := env.do(t, http.MethodPatch, "/api/servers/"+server.ID+"/invite-code", nil, owner)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/invite/"+oldCode, nil, joiner)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
}
