package drive

import "time"

// FileInfo represents metadata about a file or folder in Google Drive
type FileInfo struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	MimeType       string       `json:"mimeType"`
	Size           int64        `json:"size,omitempty"`
	CreatedTime    time.Time    `json:"createdTime"`
	ModifiedTime   time.Time    `json:"modifiedTime"`
	WebViewLink    string       `json:"webViewLink,omitempty"`
	WebContentLink string       `json:"webContentLink,omitempty"`
	Parents        []string     `json:"parents,omitempty"`
	Owners         []User       `json:"owners,omitempty"`
	Shared         bool         `json:"shared"`
	Permissions    []Permission `json:"permissions,omitempty"`
	Trashed        bool         `json:"trashed"`
}

// User represents a Google Drive user (owner, permission holder)
type User struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

// Permission represents access permissions for a file
type Permission struct {
	ID string `json:"id"`

	// Type is the type of grantee: "user", "group", "domain", "anyone"
	Type string `json:"type"`

	// Role is the role granted: "owner", "organizer", "fileOrganizer",
	// "writer", "commenter", "reader"
	Role string `json:"role"`

	EmailAddress string `json:"emailAddress,omitempty"`
	Domain       string `json:"domain,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
}

// ListOptions contains options for listing files
type ListOptions struct {
	// Query uses Google Drive's query language, e.g.
	// "name contains 'report'" or "mimeType='application/pdf'"
	Query string

	// MaxResults is the maximum number of files to return (max: 1000)
	MaxResults int

	// OrderBy specifies the sort order, e.g. "folder,modifiedTime desc,name"
	OrderBy string

	// PageToken retrieves the next page of results
	PageToken string

	// IncludeTrashed includes trashed files in results
	IncludeTrashed bool
}

// UploadOptions contains options for uploading a file
type UploadOptions struct {
	ParentFolders []string
	Description   string

	// MimeType of the content; Drive detects it when empty
	MimeType string
}

// ShareOptions contains options for sharing a file
type ShareOptions struct {
	// Type is the type of grantee: "user", "group", "domain", "anyone"
	Type string

	// Role is the role to grant: "writer", "commenter", "reader", ...
	Role string

	// EmailAddress is required when Type is "user" or "group"
	EmailAddress string

	// Domain is required when Type is "domain"
	Domain string

	SendNotificationEmail bool
	EmailMessage          string
}
