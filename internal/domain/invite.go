package domain

import (
	"errors"
	"time"
)

// InviteStatus type for invite lifecycle
type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteRejected InviteStatus = "rejected"
)

var ErrInviteNotPending = errors.New("invite is not pending")

// Invite asks a (possibly not yet registered) user, by email, to join a
// trainer's roster and optionally one of the trainer's groups.
type Invite struct {
	ID        string       `bson:"_id,omitempty" json:"id"`
	Email     string       `bson:"email" json:"email"`
	TrainerID string       `bson:"trainerId" json:"trainerId"`
	GroupID   string       `bson:"groupId,omitempty" json:"groupId,omitempty"`
	Status    InviteStatus `bson:"status" json:"status"`
	CreatedAt time.Time    `bson:"createdAt" json:"createdAt"`
	ExpiresAt time.Time    `bson:"expiresAt" json:"expiresAt"`
}

// Validate checks the invite invariants.
func (i *Invite) Validate() error {
	if i.Email == "" {
		return errors.New("invite email is required")
	}
	if i.TrainerID == "" {
		return errors.New("invite trainer is required")
	}
	if !i.ExpiresAt.After(i.CreatedAt) {
		return errors.New("invite expiry must be after creation")
	}
	switch i.Status {
	case InvitePending, InviteAccepted, InviteRejected:
	default:
		return errors.New("unknown invite status")
	}
	return nil
}

// TransitionTo moves the invite to a terminal status. Only
// pending -> accepted and pending -> rejected are legal.
func (i *Invite) TransitionTo(status InviteStatus) error {
	if i.Status != InvitePending {
		return ErrInviteNotPending
	}
	if status != InviteAccepted && status != InviteRejected {
		return errors.New("invalid invite transition")
	}
	i.Status = status
	return nil
}

// Expired reports whether the invite has passed its expiry at the given
// reference time.
func (i *Invite) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
