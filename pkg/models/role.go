package models

// Permission is a single capability granted by a role
type Permission string

const (
	PermLearn             Permission = "can_learn"
	PermManageOwnSets     Permission = "can_manage_own_sets"
	PermUploadSet         Permission = "can_upload_set"
	PermExportSet         Permission = "can_export_set"
	PermUnlimitedNewCards Permission = "has_unlimited_new_cards"
	PermSetLimits         Permission = "can_set_limits"
	PermSetRoles          Permission = "can_set_roles"
	PermBroadcast         Permission = "can_broadcast_messages"
)

// Role names recognized by the bot
const (
	RoleUser  = "user"
	RoleLite  = "lite"
	RoleVIP   = "vip"
	RoleAdmin = "admin"
)

// rolePermissions maps each role to the set of capabilities it carries
var rolePermissions = map[string]map[Permission]bool{
	RoleUser: {
		PermLearn:         true,
		PermManageOwnSets: true,
	},
	RoleLite: {
		PermLearn:         true,
		PermManageOwnSets: true,
		PermUploadSet:     true,
	},
	RoleVIP: {
		PermLearn:             true,
		PermManageOwnSets:     true,
		PermUploadSet:         true,
		PermExportSet:         true,
		PermUnlimitedNewCards: true,
	},
	RoleAdmin: {
		PermLearn:             true,
		PermManageOwnSets:     true,
		PermUploadSet:         true,
		PermExportSet:         true,
		PermUnlimitedNewCards: true,
		PermSetLimits:         true,
		PermSetRoles:          true,
		PermBroadcast:         true,
	},
}

// RoleHasPermission reports whether the given role carries the permission.
// Unknown roles carry nothing.
func RoleHasPermission(role string, perm Permission) bool {
	return rolePermissions[role][perm]
}

// HasPermission reports whether the user's role carries the permission
func (u *User) HasPermission(perm Permission) bool {
	return RoleHasPermission(u.Role, perm)
}
