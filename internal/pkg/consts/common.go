package consts

const (
	MimePrefixImage = "image"
)

const (
	FamilyRoleAdmin  = "admin"
	FamilyRoleMember = "member"
)

const (
	InvitationStatusPending  = "pending"
	InvitationStatusAccepted = "accepted"
	InvitationStatusRejected = "rejected"
)

const (
	VoteStatusActive = "active"
	VoteStatusEnded  = "ended"
)
