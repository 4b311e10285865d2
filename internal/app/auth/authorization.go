package auth

import (
	"github.com/yigit/cems/internal/app/models"
	"github.com/yigit/cems/internal/pkg/apperrors"
)

// Action is an operation guarded by the role capability table
type Action string

const (
	ActionRegisterEvent        Action = "event:register"
	ActionUnregisterEvent      Action = "event:unregister"
	ActionListRegisteredEvents Action = "event:list-registered"
	ActionCreateEvent          Action = "event:create"
	ActionUpdateEvent          Action = "event:update"
	ActionDeleteEvent          Action = "event:delete"
	ActionListUsers            Action = "user:list"
	ActionDeleteUser           Action = "user:delete"
	ActionManageContacts       Action = "contact:manage"
	ActionReadAnyChatHistory   Action = "chat:read-any-history"
)

var capabilities = map[models.RoleType]map[Action]bool{
	models.RoleStudent: {
		ActionRegisterEvent:        true,
		ActionUnregisterEvent:      true,
		ActionListRegisteredEvents: true,
	},
	models.RoleEventMember: {
		ActionCreateEvent: true,
		ActionUpdateEvent: true,
	},
	models.RoleAdmin: {
		ActionCreateEvent:        true,
		ActionUpdateEvent:        true,
		ActionDeleteEvent:        true,
		ActionListUsers:          true,
		ActionDeleteUser:         true,
		ActionManageContacts:     true,
		ActionReadAnyChatHistory: true,
	},
}

var deniedMessages = map[Action]string{
	ActionRegisterEvent:        "Only students can register for events",
	ActionUnregisterEvent:      "Only students can unregister from events",
	ActionListRegisteredEvents: "Only students have registered events",
	ActionCreateEvent:          "Only event members and admins can create events",
	ActionUpdateEvent:          "Only event members and admins can update events",
	ActionDeleteEvent:          "Only admins can delete events",
	ActionListUsers:            "Only admins can list users",
	ActionDeleteUser:           "Only admins can delete users",
	ActionManageContacts:       "Only admins can manage contact messages",
	ActionReadAnyChatHistory:   "Not authorized to view this chat history",
}

// Can reports whether role grants action
func Can(role models.RoleType, action Action) bool {
	return capabilities[role][action]
}

// Authorize returns a forbidden error unless role grants action
func Authorize(role models.RoleType, action Action) error {
	if Can(role, action) {
		return nil
	}
	msg, ok := deniedMessages[action]
	if !ok {
		msg = "Not authorized to perform this action"
	}
	return apperrors.NewForbiddenError(msg)
}

// AuthorizeEventUpdate applies the role check and then the ownership rule:
// only the creator or an admin may edit an event.
func AuthorizeEventUpdate(role models.RoleType, userID int64, event *models.Event) error {
	if err := Authorize(role, ActionUpdateEvent); err != nil {
		return err
	}
	if role == models.RoleAdmin || event.IsOwnedBy(userID) {
		return nil
	}
	return apperrors.NewForbiddenError("Not authorized to update this event")
}

// AuthorizeChatHistory allows users to read their own history and admins to read any
func AuthorizeChatHistory(role models.RoleType, requesterID, ownerID int64) error {
	if requesterID == ownerID {
		return nil
	}
	return Authorize(role, ActionReadAnyChatHistory)
}
