// Package resources provides MCP resources exposing the account registry.
//
// workspace://accounts lists every configured account with its credential
// state; workspace://accounts/{email} is one JSON document per registry
// entry. Reading a resource never triggers an authorization flow.
package resources
