package auth

// Permission constants define the available permissions in the system.
// These are used for role-based access control (RBAC) to restrict access
// to specific resources and actions.
const (
	// PermAdminIndex allows viewing the admin index page.
	PermAdminIndex = "admin.index"

	// PermPlaceholderView allows viewing the static placeholder list.
	PermPlaceholderView = "staticplaceholder.view"
	// PermPlaceholderAdd allows creating new static placeholders.
	PermPlaceholderAdd = "staticplaceholder.add"
	// PermPlaceholderChange allows editing static placeholders.
	PermPlaceholderChange = "staticplaceholder.change"
	// PermPlaceholderDelete allows deleting static placeholders.
	PermPlaceholderDelete = "staticplaceholder.delete"

	// PermSiteView allows viewing the site list.
	PermSiteView = "site.view"
	// PermSiteAdd allows creating new sites.
	PermSiteAdd = "site.add"
	// PermSiteChange allows editing sites.
	PermSiteChange = "site.change"
	// PermSiteDelete allows deleting sites.
	PermSiteDelete = "site.delete"
)

// AllPermissions lists every permission known to the system, used when
// seeding the database.
func AllPermissions() []string {
	return []string{
		PermAdminIndex,
		PermPlaceholderView,
		PermPlaceholderAdd,
		PermPlaceholderChange,
		PermPlaceholderDelete,
		PermSiteView,
		PermSiteAdd,
		PermSiteChange,
		PermSiteDelete,
	}
}
