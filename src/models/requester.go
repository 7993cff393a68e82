package models

// AnonymousRoleLevel ใช้เมื่อ request ไม่มี identity (อ่านอย่างเดียว)
const AnonymousRoleLevel = -1

// Requester คือ identity ที่ middleware แกะมาจาก token
type Requester struct {
	UserID    *string `json:"userId"`
	RoleLevel int     `json:"roleLevel"`
}

// Anonymous returns the requester used for unauthenticated reads.
func Anonymous() Requester {
	return Requester{UserID: nil, RoleLevel: AnonymousRoleLevel}
}

// IsAnonymous reports whether no user identity was resolved.
func (r Requester) IsAnonymous() bool {
	return r.UserID == nil
}
