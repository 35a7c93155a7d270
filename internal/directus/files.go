package directus

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// File descreve os metadados mínimos de um arquivo armazenado no Directus.
type File struct {
	ID               string  `json:"id"`
	FilenameDownload string  `json:"filename_download"`
	Type             string  `json:"type"`
	Filesize         int64   `json:"filesize"`
	Title            *string `json:"title,omitempty"`
}

// UploadFile envia um arquivo via multipart para o endpoint /files.
// O conteúdo é bufferizado em memória; anexos de ticket são pequenos.
func (c *Client) UploadFile(ctx context.Context, filename, contentType string, r io.Reader) (File, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+escapeQuotes(filename)+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}

	part, err := writer.CreatePart(header)
	if err != nil {
		return File{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return File{}, err
	}
	if err := writer.Close(); err != nil {
		return File{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files", &buf)
	if err != nil {
		return File{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return File{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return File{}, decodeAPIError(resp)
	}

	var envelope struct {
		Data File `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return File{}, err
	}
	return envelope.Data, nil
}

func escapeQuotes(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
