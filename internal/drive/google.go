package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"
)

const (
	defaultAPIBase    = "https://www.googleapis.com/drive/v3"
	defaultUploadBase = "https://www.googleapis.com/upload/drive/v3"
)

// GoogleStore talks to the Google Drive v3 REST API. The HTTP client is
// expected to carry OAuth credentials (see NewAuthorizedClient).
type GoogleStore struct {
	httpClient *http.Client
	apiBase    string
	uploadBase string
}

// NewGoogleStore creates a Drive-backed store using the given authorized
// HTTP client.
func NewGoogleStore(hc *http.Client) *GoogleStore {
	return &GoogleStore{
		httpClient: hc,
		apiBase:    defaultAPIBase,
		uploadBase: defaultUploadBase,
	}
}

// escapeQuery escapes a value for embedding in a Drive query string.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

type fileResource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type fileList struct {
	Files []fileResource `json:"files"`
}

func (s *GoogleStore) FindFolder(ctx context.Context, name string) (Folder, error) {
	q := fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false", escapeQuery(name), MimeFolder)

	var list fileList
	if err := s.getJSON(ctx, "/files", url.Values{"q": {q}, "fields": {"files(id,name)"}}, &list); err != nil {
		return Folder{}, err
	}
	if len(list.Files) == 0 {
		return Folder{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	// Drive allows duplicate names; take the first match, like a user
	// browsing the folder list would.
	return Folder{ID: list.Files[0].ID, Name: list.Files[0].Name}, nil
}

func (s *GoogleStore) CreateFolder(ctx context.Context, name string) (Folder, error) {
	body, err := json.Marshal(map[string]string{
		"name":     name,
		"mimeType": MimeFolder,
	})
	if err != nil {
		return Folder{}, fmt.Errorf("marshal folder metadata: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiBase+"/files", bytes.NewReader(body))
	if err != nil {
		return Folder{}, fmt.Errorf("build create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	var created fileResource
	if err := s.do(req, &created); err != nil {
		return Folder{}, err
	}
	return Folder{ID: created.ID, Name: name}, nil
}

func (s *GoogleStore) ListChildren(ctx context.Context, parent Folder, mimeType string) ([]File, error) {
	q := fmt.Sprintf("'%s' in parents and trashed=false", escapeQuery(parent.ID))
	if mimeType != "" {
		q += fmt.Sprintf(" and mimeType='%s'", escapeQuery(mimeType))
	}

	params := url.Values{
		"q":        {q},
		"fields":   {"nextPageToken, files(id,name)"},
		"pageSize": {"1000"},
	}

	var files []File
	for {
		var list struct {
			fileList
			NextPageToken string `json:"nextPageToken"`
		}
		if err := s.getJSON(ctx, "/files", params, &list); err != nil {
			return nil, err
		}
		for _, f := range list.Files {
			files = append(files, File{ID: f.ID, Name: f.Name})
		}
		if list.NextPageToken == "" {
			return files, nil
		}
		params.Set("pageToken", list.NextPageToken)
	}
}

func (s *GoogleStore) UploadFile(ctx context.Context, localPath, displayName string, parent Folder) error {
	content, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", localPath, err)
	}

	meta, err := json.Marshal(map[string]any{
		"name":    displayName,
		"parents": []string{parent.ID},
	})
	if err != nil {
		return fmt.Errorf("marshal file metadata: %w", err)
	}

	// Drive multipart upload: a metadata part followed by the media part.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	part, err := mw.CreatePart(metaHeader)
	if err != nil {
		return fmt.Errorf("build metadata part: %w", err)
	}
	if _, err := part.Write(meta); err != nil {
		return fmt.Errorf("write metadata part: %w", err)
	}

	mediaHeader := textproto.MIMEHeader{}
	mediaHeader.Set("Content-Type", "application/octet-stream")
	part, err = mw.CreatePart(mediaHeader)
	if err != nil {
		return fmt.Errorf("build media part: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return fmt.Errorf("write media part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	uploadURL := s.uploadBase + "/files?uploadType=multipart"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &buf)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "multipart/related; boundary="+mw.Boundary())

	return s.do(req, nil)
}

func (s *GoogleStore) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiBase+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return s.do(req, out)
}

func (s *GoogleStore) do(req *http.Request, out any) error {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: drive returned %d: %s", ErrUnavailable, resp.StatusCode, bytes.TrimSpace(msg))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding drive response: %v", ErrUnavailable, err)
	}
	return nil
}
