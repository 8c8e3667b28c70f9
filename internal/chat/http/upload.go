package http

import (
	"errors"
	"net/http"

	"github.com/chronolock/chatd/internal/chat/service"
)

// maxUploadBytes caps avatar uploads; anything larger spills to temp files
// and is still bounded by the multipart reader.
const maxUploadBytes = 10 << 20

// formAvatar parses the request form and extracts the optional "avatar" file
// field. The returned closer must be called after the upload is consumed.
// Non-multipart requests simply carry no avatar.
func formAvatar(r *http.Request) (*service.AvatarUpload, func(), error) {
	noop := func() {}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			if err := r.ParseForm(); err != nil {
				return nil, nil, err
			}
			return nil, noop, nil
		}
		return nil, nil, err
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, noop, nil
		}
		return nil, nil, err
	}

	return &service.AvatarUpload{Filename: header.Filename, Reader: file},
		func() { file.Close() }, nil
}
