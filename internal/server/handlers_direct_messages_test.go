package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"concord/internal/models"
	"concord/internal/realtime"
)

type dmFixture struct {
	conversation *models.Conversation
	one          *http.Cookie
	two          *http.Cookie

	memberOne *models.Member
	memberTwo *models.Member
}

func newDMFixture(t *testing.T, env *testEnv) *dmFixture {
	t.Helper()

	oneProfile, one := env.signIn(t, "user-1", "marie")
	twoProfile, two := env.signIn(t, "user-2", "paul")

	server := env.createServer(t, one, "gophers")
	memberTwo, err := env.store.CreateMember(server.ID, twoProfile.ID, models.RoleGuest)
	require.NoError(t, err)
	memberOne, err := env.store.FindMember(server.ID, oneProfile.ID)
	require.NoError(t, err)

	conversation, err := env.store.CreateConversation(memberOne.ID, memberTwo.ID)
	require.NoError(t, err)

	return &dmFixture{
		conversation: conversation,
		one:          one,
		two:          two,
		memberOne:    memberOne,
		memberTwo:    memberTwo,
	}
}

func (f *dmFixture) directMessagesURL() string {
	return "/api/socket/direct-messages?conversationId=" + f.conversation.ID
}

func (f *dmFixture) directMessageURL(id string) string {
	return fmt.Sprintf("/api/socket/direct-messages/%s?conversationId=%s", id, f.conversation.ID)
}

func TestCreateDirectMessage(t *testing.T) {
	env := newTestEnv(t)
	f := newDMFixture(t, env)
	_, outsider := env.signIn(t, "user-3", "nina")

	sub := env.hub.Subscribe(realtime.ConversationStream(f.conversation.ID))
	defer env.hub.Unsubscribe(sub)

	rec := env.do(t, http.MethodPost, f.directMessagesURL(), map[string]string{"content": "psst"}, outsider)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, f.directMessagesURL(), map[string]string{"content": "psst"}, f.two)
	require.Equal(t, http.StatusOK, rec.Code)

	message := new(models.DirectMessage)
	decodeBody(t, rec, message)
	require.Equal(t, f.memberTwo.ID, message.MemberID)
	require.Equal(t, f.conversation.ID, message.ConversationID)

	event := <-sub.C()
	require.Equal(t, realtime.Added, event.Type)
	require.Equal(t, message.ID, event.ID)
}

func TestCreateDirectMessageGateFailureStopsHandler(t *testing.T) {
	env := newTestEnv(t)
	f := newDMFixture(t, env)
	_, outsider := env.signIn(t, "user-3", "nina")

	body := map[string]string{"content": "psst"}

	rec := invoke(t, env.srv.HandlerCreateDirectMessage, http.MethodPost,
		"/api/socket/direct-messages", body, f.one)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = invoke(t, env.srv.HandlerCreateDirectMessage, http.MethodPost,
		f.directMessagesURL(), body, outsider)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = invoke(t, env.srv.HandlerDeleteDirectMessage, http.MethodDelete,
		"/api/socket/direct-messages/directMessages:x?conversationId=conversations:missing", nil, f.one)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDirectMessageModifyRules(t *testing.T) {
	env := newTestEnv(t)
	f := newDMFixture(t, env)

	message, err := env.store.CreateDirectMessage(f.conversation.ID, f.memberTwo.ID, "original", "")
	require.NoError(t, err)

	// Only the author edits.
	rec := env.do(t, http.MethodPatch, f.directMessageURL(message.ID), map[string]string{"content": "edited"}, f.one)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPatch, f.directMessageURL(message.ID), map[string]string{"content": "edited"}, f.two)
	require.Equal(t, http.StatusOK, rec.Code)

	// memberOne is the server admin, so they may soft-delete.
	rec = env.do(t, http.MethodDelete, f.directMessageURL(message.ID), nil, f.one)
	require.Equal(t, http.StatusOK, rec.Code)

	deleted := new(models.DirectMessage)
	decodeBody(t, rec, deleted)
	require.True(t, deleted.Deleted)
	require.Equal(t, models.DeletedMessagePlaceholder, deleted.Content)
}

func TestDirectMessagePagination(t *testing.T) {
	env := newTestEnv(t)
	f := newDMFixture(t, env)

	for i := 0; i < 12; i++ {
		_, err := env.store.CreateDirectMessage(f.conversation.ID, f.memberOne.ID, fmt.Sprintf("dm %d", i), "")
		require.NoError(t, err)
	}

	type page struct {
		Items      []models.DirectMessage `json:"items"`
		NextCursor *string                `json:"nextCursor"`
	}

	rec := env.do(t, http.MethodGet, "/api/direct-messages?conversationId="+f.conversation.ID, nil, f.one)
	require.Equal(t, http.StatusOK, rec.Code)

	var first page
	decodeBody(t, rec, &first)
	require.Len(t, first.Items, 10)
	require.NotNil(t, first.NextCursor)
	require.Equal(t, "dm 11", first.Items[0].Content)

	rec = env.do(t, http.MethodGet,
		"/api/direct-messages?conversationId="+f.conversation.ID+"&cursor="+*first.NextCursor, nil, f.one)
	require.Equal(t, http.StatusOK, rec.Code)

	var second page
	decodeBody(t, rec, &second)
	require.Len(t, second.Items, 2)
	require.Nil(t, second.NextCursor)
	require.Equal(t, "dm 1", second.Items[0].Content)
	require.Equal(t, "dm 0", second.Items[1].Content)
}

func TestFindOrCreateConversation(t *testing.T) {
	env := newTestEnv(t)
	f := newDMFixture(t, env)
	_, outsider := env.signIn(t, "user-3", "nina")

	body := map[string]string{"memberOneId": f.memberOne.ID, "memberTwoId": f.memberTwo.ID}

	rec := env.do(t, http.MethodPost, "/api/conversations", body, f.one)
	require.Equal(t, http.StatusOK, rec.Code)

	found := new(models.Conversation)
	decodeBody(t, rec, found)
	require.Equal(t, f.conversation.ID, found.ID)

	// Reversed member order resolves to the same conversation.
	reversed := map[string]string{"memberOneId": f.memberTwo.ID, "memberTwoId": f.memberOne.ID}
	rec = env.do(t, http.MethodPost, "/api/conversations", reversed, f.two)
	require.Equal(t, http.StatusOK, rec.Code)

	decodeBody(t, rec, found)
	require.Equal(t, f.conversation.ID, found.ID)

	// Callers outside the pair cannot open it.
	rec = env.do(t, http.MethodPost, "/api/conversations", body, outsider)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
