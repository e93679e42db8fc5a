package cache

import (
	"fmt"
	"github.com/google/uuid"
)

func CurrentSite(name string) string {
	return fmt.Sprintf("%s|current-site", name)
}

// CurrentForums holds the permission set assignment of every published forum
// of a site.
func CurrentForums(siteId uuid.UUID) string {
	return fmt.Sprintf("%s|current-forums", siteId)
}

// PermissionSet holds the grants of a single permission set.
func PermissionSet(permissionSetId uuid.UUID) string {
	return fmt.Sprintf("%s|permission-set", permissionSetId)
}
