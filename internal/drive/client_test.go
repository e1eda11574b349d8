package drive

import (
	"context"
	"testing"
	"time"

	drive "google.golang.org/api/drive/v3"
)

func TestToFileInfo(t *testing.T) {
	f := &drive.File{
		Id:           "file1",
		Name:         "report.pdf",
		MimeType:     "application/pdf",
		Size:         2048,
		CreatedTime:  "2026-01-15T08:00:00Z",
		ModifiedTime: "2026-02-01T12:30:00Z",
		WebViewLink:  "https://drive.google.com/file/d/file1/view",
		Parents:      []string{"folder1"},
		Shared:       true,
		Owners: []*drive.User{
			{DisplayName: "Alice", EmailAddress: "alice@example.com"},
		},
		Permissions: []*drive.Permission{
			{Id: "perm1", Type: "user", Role: "writer", EmailAddress: "bob@example.com"},
		},
	}

	info := toFileInfo(f)

	if info.ID != "file1" || info.Name != "report.pdf" {
		t.Errorf("unexpected info: %+v", info)
	}
	if info.Size != 2048 || !info.Shared {
		t.Errorf("size/shared not mapped: %+v", info)
	}
	wantCreated := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	if !info.CreatedTime.Equal(wantCreated) {
		t.Errorf("CreatedTime = %v, want %v", info.CreatedTime, wantCreated)
	}
	if len(info.Owners) != 1 || info.Owners[0].EmailAddress != "alice@example.com" {
		t.Errorf("owners not mapped: %+v", info.Owners)
	}
	if len(info.Permissions) != 1 || info.Permissions[0].Role != "writer" {
		t.Errorf("permissions not mapped: %+v", info.Permissions)
	}
}

func TestToFileInfoNil(t *testing.T) {
	info := toFileInfo(nil)
	if info.ID != "" {
		t.Errorf("expected empty info for nil file, got %+v", info)
	}
}

func TestFileInfoKindChecks(t *testing.T) {
	folder := &FileInfo{MimeType: FolderMimeType}
	if !folder.IsFolder() {
		t.Error("folder MIME type should be detected as folder")
	}
	if !folder.IsGoogleDoc() {
		t.Error("folder is a Google-native type")
	}

	doc := &FileInfo{MimeType: "application/vnd.google-apps.document"}
	if !doc.IsGoogleDoc() {
		t.Error("Google Doc should be detected as Google-native")
	}
	if doc.IsFolder() {
		t.Error("Google Doc is not a folder")
	}

	pdf := &FileInfo{MimeType: "application/pdf"}
	if pdf.IsGoogleDoc() || pdf.IsFolder() {
		t.Error("PDF should be a plain binary file")
	}
}

func TestValidation(t *testing.T) {
	c := &Client{}
	ctx := context.Background()

	if _, err := c.GetFile(ctx, ""); err == nil {
		t.Error("GetFile should require fileID")
	}
	if _, err := c.DownloadFile(ctx, ""); err == nil {
		t.Error("DownloadFile should require fileID")
	}
	if _, err := c.ExportFile(ctx, "file1", ""); err == nil {
		t.Error("ExportFile should require mimeType")
	}
	if _, err := c.UploadFile(ctx, "", nil, nil); err == nil {
		t.Error("UploadFile should require a name")
	}
	if _, err := c.CreateFolder(ctx, "", nil); err == nil {
		t.Error("CreateFolder should require a name")
	}
	if _, err := c.ShareFile(ctx, "file1", &ShareOptions{Type: "user"}); err == nil {
		t.Error("ShareFile should require a role")
	}
	if err := c.DeleteFile(ctx, ""); err == nil {
		t.Error("DeleteFile should require fileID")
	}
}
