package server

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

type conversationBody struct {
	MemberOneID string `json:"memberOneId"`
	MemberTwoID string `json:"memberTwoId"`
}

// HandlerFindOrCreateConversation returns the conversation between two
// members, creating it on first contact. Member order does not matter.
func (s *Server) HandlerFindOrCreateConversation(c echo.Context) error {
	resp := make(map[string]any)

	profile := s.auth.CurrentProfile(c)
	if profile == nil {
		resp["error"] = "Unauthorized"
		return c.JSON(http.StatusUnauthorized, resp)
	}

	body := new(conversationBody)
	if err := c.Bind(body); err != nil || body.MemberOneID == "" || body.MemberTwoID == "" {
		resp["error"] = "Member IDs missing"
		return c.JSON(http.StatusBadRequest, resp)
	}

	owned := false
	for _, memberID := range []string{body.MemberOneID, body.MemberTwoID} {
		member, err := s.db.GetMember(memberID)
		if err != nil {
			log.Println("fetching member:", err)
			resp["error"] = "Internal Error"
			return c.JSON(http.StatusInternalServerError, resp)
		}
		if member == nil {
			resp["error"] = "Member not found"
			return c.JSON(http.StatusNotFound, resp)
		}
		if member.ProfileID == profile.ID {
			owned = true
		}
	}
	if !owned {
		resp["error"] = "Member not found"
		return c.JSON(http.StatusNotFound, resp)
	}

	conversation, err := s.db.FindConversation(body.MemberOneID, body.MemberTwoID)
	if err != nil {
		log.Println("finding conversation:", err)
		resp["error"] = "Internal Error"
		return c.JSON(http.StatusInternalServerError, resp)
	}
	if conversation == nil {
		conversation, err = s.db.CreateConversation(body.MemberOneID, body.MemberTwoID)
		if err != nil {
			log.Println("creating conversation:", err)
			resp["error"] = "Internal Error"
			return c.JSON(http.StatusInternalServerError, resp)
		}
	}

	return c.JSON(http.StatusOK, conversation)
}
