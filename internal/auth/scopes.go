package auth

// DefaultScopes are the Google OAuth scopes required for the full tool
// surface. They are requested together so one consent covers every service
// the server exposes.
//
//   - Gmail: read, modify, send
//   - Calendar: full access
//   - Drive: full access
//   - Docs, Sheets, Slides: document access
//   - OpenID Connect: identity resolution after the code exchange
var DefaultScopes = []string{
	// OpenID Connect scopes so the userinfo endpoint can resolve which
	// account a token belongs to.
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",

	// Gmail
	"https://mail.google.com/",
	"https://www.googleapis.com/auth/gmail.modify",
	"https://www.googleapis.com/auth/gmail.send",

	// Calendar
	"https://www.googleapis.com/auth/calendar",

	// Drive
	"https://www.googleapis.com/auth/drive",

	// Docs
	"https://www.googleapis.com/auth/documents",

	// Sheets
	"https://www.googleapis.com/auth/spreadsheets",

	// Slides
	"https://www.googleapis.com/auth/presentations",
}
