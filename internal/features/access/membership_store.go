package access

import (
	"fmt"

	users_enums "taskboard/internal/features/users/enums"

	"github.com/google/uuid"
)

type Membership struct {
	UserID uuid.UUID               `json:"userId"`
	Role   users_enums.ProjectRole `json:"role"`
}

// UserLookup reports whether a user id resolves to a registered user.
type UserLookup func(userID uuid.UUID) (bool, error)

// MembershipSet is the ordered (user, role) list of one project. It enforces
// the structural invariants only; who may call its mutators is decided by Authorize.
type MembershipSet struct {
	ProjectID uuid.UUID
	members   []Membership
}

func NewMembershipSet(projectID uuid.UUID, members ...Membership) *MembershipSet {
	set := &MembershipSet{ProjectID: projectID}
	set.members = append(set.members, members...)

	return set
}

func (s *MembershipSet) Members() []Membership {
	if s == nil {
		return nil
	}

	members := make([]Membership, len(s.members))
	copy(members, s.members)

	return members
}

func (s *MembershipSet) Len() int {
	if s == nil {
		return 0
	}

	return len(s.members)
}

// RoleOf returns the role of userID; ok is false when the user holds no membership.
func (s *MembershipSet) RoleOf(userID uuid.UUID) (role users_enums.ProjectRole, ok bool) {
	if s == nil {
		return "", false
	}

	if i := s.indexOf(userID); i >= 0 {
		return s.members[i].Role, true
	}

	return "", false
}

func (s *MembershipSet) AddMember(userID uuid.UUID, role users_enums.ProjectRole, lookup UserLookup) error {
	role = role.OrDefault()
	if !role.IsValid() {
		return ErrInvalidRole
	}

	if s.indexOf(userID) >= 0 {
		return ErrDuplicateMember
	}

	exists, err := lookup(userID)
	if err != nil {
		return fmt.Errorf("failed to resolve user: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}

	s.members = append(s.members, Membership{UserID: userID, Role: role})

	return nil
}

func (s *MembershipSet) UpdateRole(callerID, userID uuid.UUID, role users_enums.ProjectRole) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}

	i := s.indexOf(userID)
	if i < 0 {
		return ErrMemberNotFound
	}

	if userID == callerID {
		return ErrSelfRoleChange
	}

	s.members[i].Role = role

	return nil
}

func (s *MembershipSet) RemoveMember(callerID, userID uuid.UUID) error {
	i := s.indexOf(userID)
	if i < 0 {
		return ErrMemberNotFound
	}

	if userID == callerID {
		return ErrSelfRemoval
	}

	s.members = append(s.members[:i], s.members[i+1:]...)

	return nil
}

func (s *MembershipSet) indexOf(userID uuid.UUID) int {
	if s == nil {
		return -1
	}

	for i, member := range s.members {
		if member.UserID == userID {
			return i
		}
	}

	return -1
}
